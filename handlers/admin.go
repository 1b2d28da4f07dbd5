package handlers

import (
	"errors"
	"net/http"
	"time"

	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler issues admin session tokens for the slot toggle UI.
type AdminHandler struct {
	Tokens *utils.AdminTokens
	Logger *zap.Logger
}

func NewAdminHandler(tokens *utils.AdminTokens, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Tokens: tokens, Logger: logger}
}

type adminSessionRequest struct {
	Passphrase string `json:"passphrase"`
}

type adminSessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateAdminSessionHandler exchanges the shared passphrase for a token.
func (h *AdminHandler) CreateAdminSessionHandler(c *gin.Context) {
	logger := requestLogger(c, h.Logger)
	var req adminSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Passphrase == "" {
		utils.JSONError(c, logger, http.StatusBadRequest, "passphrase is required", "")
		return
	}

	token, exp, err := h.Tokens.Login(req.Passphrase)
	switch {
	case errors.Is(err, utils.ErrAdminDisabled):
		utils.JSONError(c, logger, http.StatusNotFound, "admin mode is not configured", "")
		return
	case errors.Is(err, utils.ErrInvalidPassphrase):
		utils.JSONError(c, logger, http.StatusUnauthorized, "invalid passphrase", "")
		return
	case err != nil:
		utils.JSONError(c, logger, http.StatusInternalServerError, "could not issue admin token", err.Error())
		return
	}
	c.JSON(http.StatusOK, adminSessionResponse{Token: token, ExpiresAt: exp})
}
