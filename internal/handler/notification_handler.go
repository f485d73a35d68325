package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maayan-lessons/booking-api/internal/dto"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/response"
)

// NotificationHandler exposes the mail configuration check.
type NotificationHandler struct {
	notifications NotificationService
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// TestEmail godoc
// @Summary Send a test email
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/test-email [post]
func (h *NotificationHandler) TestEmail(c *gin.Context) {
	var req dto.TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	if err := h.notifications.SendTest(c.Request.Context(), req.To); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"sent": true})
}
