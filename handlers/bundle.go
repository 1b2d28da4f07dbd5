package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking store endpoints
	ListBookingsHandler  gin.HandlerFunc
	ToggleBookingHandler gin.HandlerFunc

	// Submission endpoint
	SubmitContactHandler gin.HandlerFunc

	// Admin endpoints
	CreateAdminSessionHandler gin.HandlerFunc
	// AdminGate guards slot toggling when admin mode is enforced.
	AdminGate gin.HandlerFunc
}
