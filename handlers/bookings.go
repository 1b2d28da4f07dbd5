package handlers

import (
	"net/http"
	"strings"

	slotRepo "inkbook/database/repository/slots"
	"inkbook/models"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingsHandler exposes the slot store over HTTP.
type BookingsHandler struct {
	Slots            slotRepo.SlotRepository
	StrictSlotFormat bool
	Logger           *zap.Logger
}

func NewBookingsHandler(slots slotRepo.SlotRepository, strict bool, logger *zap.Logger) *BookingsHandler {
	return &BookingsHandler{Slots: slots, StrictSlotFormat: strict, Logger: logger}
}

// ListBookingsHandler returns every booked slot, or store diagnostics when
// called with ?debug=1.
func (h *BookingsHandler) ListBookingsHandler(c *gin.Context) {
	if c.Query("debug") == "1" {
		h.diagnostics(c)
		return
	}

	bookings, err := h.Slots.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, requestLogger(c, h.Logger), err)
		return
	}
	models.SortBookings(bookings)
	c.JSON(http.StatusOK, models.BookingsResponse{Bookings: bookings, Shared: h.Slots.Shared()})
}

func (h *BookingsHandler) diagnostics(c *gin.Context) {
	err := h.Slots.Ping(c.Request.Context())
	if err != nil {
		requestLogger(c, h.Logger).Warn("slot store diagnostics: backend unreachable", zap.Error(err))
	}
	c.JSON(http.StatusOK, models.StoreDiagnostics{
		OK:                true,
		BackendConfigured: h.Slots.Shared(),
		Reachable:         err == nil,
		Backend:           h.Slots.Backend(),
	})
}

// ToggleBookingHandler flips one slot between booked and available.
func (h *BookingsHandler) ToggleBookingHandler(c *gin.Context) {
	var req models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, requestLogger(c, h.Logger), http.StatusBadRequest, "date and time are required", err.Error())
		return
	}
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	if req.Date == "" || req.Time == "" {
		utils.JSONError(c, requestLogger(c, h.Logger), http.StatusBadRequest, "date and time are required", "")
		return
	}
	if h.StrictSlotFormat {
		if err := models.ValidateSlotFormat(req.Date, req.Time); err != nil {
			utils.RespondError(c, requestLogger(c, h.Logger), err)
			return
		}
	}

	booked, err := h.Slots.Toggle(c.Request.Context(), req.Date, req.Time)
	if err != nil {
		utils.RespondError(c, requestLogger(c, h.Logger), err)
		return
	}

	message := "unbooked"
	if booked {
		message = "booked"
	}
	requestLogger(c, h.Logger).Info("slot toggled",
		zap.String("date", req.Date), zap.String("time", req.Time), zap.Bool("booked", booked))
	c.JSON(http.StatusOK, models.ToggleResponse{Message: message, Booked: booked, Date: req.Date, Time: req.Time})
}
