package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maayan-lessons/booking-api/internal/dto"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/response"
)

// SettingsHandler reads and updates the public display settings.
type SettingsHandler struct {
	settings SettingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settings SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
// @Summary Current settings
// @Tags settings
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.SettingsResponse}
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.settings.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Update godoc
// @Summary Update settings
// @Description Changes the display hour range and timezone.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "settings"
// @Success 200 {object} response.Envelope{data=dto.SettingsResponse}
// @Failure 400 {object} response.Envelope
// @Router /settings [post]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid settings payload"))
		return
	}
	resp, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}
