package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLogger tags base with the request ID set by middleware.RequestID.
func requestLogger(c *gin.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.L()
	}
	if id := c.GetString("requestID"); id != "" {
		return base.With(zap.String("requestID", id))
	}
	return base
}
