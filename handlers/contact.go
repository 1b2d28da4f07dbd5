package handlers

import (
	"net/http"

	"inkbook/models"
	"inkbook/services/booking"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactHandler accepts booking request submissions.
type ContactHandler struct {
	Submissions booking.SubmissionService
	Logger      *zap.Logger
}

func NewContactHandler(svc booking.SubmissionService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{Submissions: svc, Logger: logger}
}

// SubmitContactHandler validates the request, notifies the studio and books the slot.
func (h *ContactHandler) SubmitContactHandler(c *gin.Context) {
	var req models.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, requestLogger(c, h.Logger), http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	receipt, err := h.Submissions.Submit(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, requestLogger(c, h.Logger), err)
		return
	}

	logger := requestLogger(c, h.Logger)
	if !receipt.SlotRecorded {
		logger.Warn("booking accepted without slot record", zap.String("submissionID", receipt.ID))
	}
	c.JSON(http.StatusOK, models.SubmissionResponse{Status: "ok", Message: "Booking request sent"})
}
