package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maayan-lessons/booking-api/internal/dto"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/response"
)

// SlotHandler exposes the public week view and the admin slot operations.
type SlotHandler struct {
	slots    SlotService
	schedule ScheduleService
}

// NewSlotHandler constructs a SlotHandler.
func NewSlotHandler(slots SlotService, schedule ScheduleService) *SlotHandler {
	return &SlotHandler{slots: slots, schedule: schedule}
}

// parseWeekParam reads the optional ?weekStart=YYYY-MM-DD query parameter,
// defaulting to the current week. The value is interpreted as UTC; the
// service normalises it to the week's Sunday.
func parseWeekParam(c *gin.Context) (time.Time, error) {
	raw := c.Query("weekStart")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "weekStart must be formatted as YYYY-MM-DD")
	}
	return parsed, nil
}

// PublicWeek godoc
// @Summary Public week slots
// @Description Lists all slots for the requested week.
// @Tags slots
// @Produce json
// @Param weekStart query string false "week start (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.PublicWeekResponse}
// @Router /slots [get]
func (h *SlotHandler) PublicWeek(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.slots.PublicWeek(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// AdminWeek godoc
// @Summary Admin week view
// @Description Lists week slots with bookings and the display grid.
// @Tags admin
// @Produce json
// @Param weekStart query string false "week start (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.AdminWeekResponse}
// @Router /admin/slots [get]
func (h *SlotHandler) AdminWeek(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.slots.AdminWeek(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// BlockSlot godoc
// @Summary Block a slot
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.SlotActionRequest true "slot id"
// @Success 200 {object} response.Envelope
// @Router /admin/block-slot [post]
func (h *SlotHandler) BlockSlot(c *gin.Context) {
	h.slotAction(c, h.slots.BlockSlot)
}

// ReleaseSlot godoc
// @Summary Release a slot
// @Description Frees the slot and deletes any booking tied to it.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.SlotActionRequest true "slot id"
// @Success 200 {object} response.Envelope
// @Router /admin/release-slot [post]
func (h *SlotHandler) ReleaseSlot(c *gin.Context) {
	h.slotAction(c, h.slots.ReleaseSlot)
}

// BlockDay godoc
// @Summary Block a whole day
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.DayActionRequest true "local date"
// @Success 200 {object} response.Envelope{data=dto.DayActionResponse}
// @Router /admin/block-day [post]
func (h *SlotHandler) BlockDay(c *gin.Context) {
	h.dayAction(c, h.slots.BlockDay)
}

// ReleaseDay godoc
// @Summary Release a whole day
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.DayActionRequest true "local date"
// @Success 200 {object} response.Envelope{data=dto.DayActionResponse}
// @Router /admin/release-day [post]
func (h *SlotHandler) ReleaseDay(c *gin.Context) {
	h.dayAction(c, h.slots.ReleaseDay)
}

// SeedWeeks godoc
// @Summary Seed weekly slots
// @Description Generates slots from the working-hour template.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.SeedWeeksRequest true "seed parameters"
// @Success 200 {object} response.Envelope{data=dto.SeedWeeksResponse}
// @Router /admin/seed-weeks [post]
func (h *SlotHandler) SeedWeeks(c *gin.Context) {
	var req dto.SeedWeeksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "weekStart is required"))
		return
	}
	generated, err := h.schedule.SeedWeeks(c.Request.Context(), req.WeekStart, req.Weeks, req.Lesson, req.Buffer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SeedWeeksResponse{Generated: generated})
}

// CreateSlot godoc
// @Summary Create a one-off slot
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotRequest true "slot definition"
// @Success 201 {object} response.Envelope
// @Router /admin/create-slot [post]
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "startLocal is required"))
		return
	}
	if err := h.schedule.CreateSlot(c.Request.Context(), req.StartLocal, req.DurationMin); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"created": true})
}

func (h *SlotHandler) slotAction(c *gin.Context, action func(ctx context.Context, id string) error) {
	var req dto.SlotActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "slotId is required"))
		return
	}
	if err := action(c.Request.Context(), req.SlotID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"slotId": req.SlotID})
}

func (h *SlotHandler) dayAction(c *gin.Context, action func(ctx context.Context, date string) (int64, error)) {
	var req dto.DayActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	count, err := action(c.Request.Context(), req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DayActionResponse{Count: count})
}
