package routes

import (
	"net/http"

	"inkbook/handlers"
	"inkbook/middleware"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the slot store and submission endpoints on g.
func RegisterBookingRoutes(g *gin.RouterGroup, hb *handlers.HandlerBundle) {
	gate := hb.AdminGate
	if gate == nil {
		gate = func(c *gin.Context) { c.Next() }
	}
	g.GET("/bookings", hb.ListBookingsHandler)
	g.POST("/bookings", gate, hb.ToggleBookingHandler)
	g.POST("/contact", hb.SubmitContactHandler)
}

// RegisterAdminRoutes sets up endpoints for admin mode.
func RegisterAdminRoutes(g *gin.RouterGroup, hb *handlers.HandlerBundle) {
	if hb.CreateAdminSessionHandler == nil {
		return
	}
	g.POST("/admin/session", hb.CreateAdminSessionHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "store": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// Every API route is served both at the root and under /api, which is the
// prefix the front end's dev proxy uses.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// NoStore runs first; the CORS middleware aborts preflights.
	r.Use(middleware.NoStore())
	r.Use(middleware.CORS())

	for _, g := range []*gin.RouterGroup{r.Group(""), r.Group("/api")} {
		RegisterBookingRoutes(g, hb)
		RegisterAdminRoutes(g, hb)
	}
	RegisterHealthRoute(r)
}
