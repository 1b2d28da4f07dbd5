package utils

import (
	"errors"
	"net/http"

	"inkbook/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string   `json:"message"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response. Client mistakes are
// logged at Info through the logger the handler passes.
func JSONError(c *gin.Context, logger *zap.Logger, status int, message string, details string) {
	if logger == nil {
		logger = GetLogger()
	}
	fields := []zap.Field{zap.String("details", details), zap.Int("status", status), zap.String("path", c.Request.URL.Path)}
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Info(message, fields...)
	}
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// StatusFor maps the booking error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidSlot):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrSlotConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err using StatusFor. Validation errors carry the offending field names.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	if logger == nil {
		logger = GetLogger()
	}
	status := StatusFor(err)
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		logger.Info("request rejected", zap.Strings("fields", vErr.Fields), zap.String("path", c.Request.URL.Path))
		c.JSON(status, ErrorResponse{Message: vErr.Error(), Fields: vErr.Fields})
		return
	}
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		logger.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	}
	c.JSON(status, ErrorResponse{Message: err.Error()})
}
