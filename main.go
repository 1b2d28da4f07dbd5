package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkbook/config"
	slotRepo "inkbook/database/repository/slots"
	"inkbook/handlers"
	"inkbook/middleware"
	"inkbook/routes"
	"inkbook/services/booking"
	"inkbook/services/notification"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxRequestBody is large enough for a base64 reference image plus form fields.
const maxRequestBody = 10 << 20

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// slot store.
	storeCfg := cfg.Store()
	slots, err := slotRepo.NewSlotRepository(ctx, storeCfg, logger)
	switch {
	case slots == nil:
		logger.Error("main: slot store could not be created, falling back to in-memory store",
			zap.String("backend", storeCfg.Backend), zap.Error(err))
		slots = slotRepo.NewMemorySlotRepo()
	case err != nil:
		logger.Warn("main: slot store unreachable at startup, serving degraded",
			zap.String("backend", storeCfg.Backend), zap.Error(err))
	}
	if !slots.Shared() {
		logger.Warn("main: using in-memory slot store; bookings are not shared across instances or restarts")
	}
	utils.StartHealthMonitor(ctx, slots.Backend(), slots, 60*time.Second)

	// notification transport.
	var notifier notification.Notifier
	if cfg.ResendAPIKey != "" {
		resendNotifier, err := notification.NewResendNotifier(cfg.ResendAPIKey, cfg.MailFrom, cfg.AdminEmail, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize email notifications: %v", err)
		}
		notifier = resendNotifier
	} else {
		logger.Warn("main: RESEND_API_KEY not set, booking requests will only be logged")
		notifier = notification.NewLogNotifier(logger)
	}

	archive, err := utils.Cloudinary(cfg)
	if err != nil {
		logger.Warn("main: reference image archive disabled", zap.Error(err))
	}

	// services.
	submissionService := &booking.DefaultSubmissionService{
		Slots:    slots,
		Notifier: notifier,
		Options: booking.Options{
			StudioName:         cfg.StudioName,
			MaxAttachmentBytes: cfg.MaxAttachmentBytes,
			StrictSlotFormat:   cfg.StrictSlotFormat,
		},
		Logger: logger,
	}
	if archive != nil {
		submissionService.Archive = archive
	}

	adminTokens := utils.NewAdminTokens(cfg.AdminPassphraseHash, cfg.JWTSecret, 12*time.Hour)
	if cfg.RequireAdminToggle && adminTokens == nil {
		logger.Sugar().Fatal("main: REQUIRE_ADMIN_TOGGLE needs ADMIN_PASSPHRASE_HASH and JWT_SECRET")
	}

	bookingsHandler := handlers.NewBookingsHandler(slots, cfg.StrictSlotFormat, logger)
	contactHandler := handlers.NewContactHandler(submissionService, logger)

	handlerBundle := &handlers.HandlerBundle{
		ListBookingsHandler:  bookingsHandler.ListBookingsHandler,
		ToggleBookingHandler: bookingsHandler.ToggleBookingHandler,
		SubmitContactHandler: contactHandler.SubmitContactHandler,
		AdminGate:            middleware.AdminTokenMiddleware(adminTokens, cfg.RequireAdminToggle),
	}
	if adminTokens != nil {
		handlerBundle.CreateAdminSessionHandler = handlers.NewAdminHandler(adminTokens, logger).CreateAdminSessionHandler
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(middleware.BodyLimit(maxRequestBody))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "3001"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s (store: %s)...", srv.Addr, slots.Backend())
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
