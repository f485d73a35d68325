package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maayan-lessons/booking-api/internal/dto"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/response"
)

// BookingHandler exposes the public booking endpoint.
type BookingHandler struct {
	bookings BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Book godoc
// @Summary Book a slot
// @Description Atomically reserves a free slot for the student.
// @Tags booking
// @Accept json
// @Produce json
// @Param request body dto.BookRequest true "booking details"
// @Success 201 {object} response.Envelope{data=dto.BookResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /book [post]
func (h *BookingHandler) Book(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid booking payload"))
		return
	}
	resp, err := h.bookings.Book(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}
