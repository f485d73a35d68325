package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maayan-lessons/booking-api/internal/dto"
	"github.com/maayan-lessons/booking-api/internal/models"
	"github.com/maayan-lessons/booking-api/internal/repository"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^[+()0-9]{6,}$`)

// RegisterPhoneValidation adds the "phone" tag: at least six characters of
// digits, plus signs or parentheses after spaces and dashes are stripped.
func RegisterPhoneValidation(v *validator.Validate) error {
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		cleaned := strings.NewReplacer(" ", "", "-", "").Replace(fl.Field().String())
		return phonePattern.MatchString(cleaned)
	})
}

type bookingSlotStore interface {
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	Book(ctx context.Context, booking *models.Booking) error
}

type bookingNotifier interface {
	EnqueueBookingConfirmation(booking models.Booking, slot models.Slot)
}

type bookingObserver interface {
	ObserveBooking(outcome string)
}

// BookingService handles student bookings. The slot claim itself is a
// single atomic statement in the repository; this layer validates input,
// maps outcomes and fires side effects.
type BookingService struct {
	slots    bookingSlotStore
	cache    cacheInvalidator
	notifier bookingNotifier
	metrics  bookingObserver
	validate *validator.Validate
	logger   *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(slots bookingSlotStore, cache cacheInvalidator, notifier bookingNotifier, metrics bookingObserver, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		slots:    slots,
		cache:    cache,
		notifier: notifier,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
	}
}

// Book validates the request, claims the slot and records the booking.
// Validation failures return before any store access. A lost race maps to
// ErrSlotTaken so the student sees a conflict, not an error page.
func (s *BookingService) Book(ctx context.Context, req dto.BookRequest) (*dto.BookResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		s.observe("invalid")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	slot, err := s.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.observe("not_found")
			return nil, appErrors.ErrSlotNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}

	booking := models.Booking{
		SlotID:       req.SlotID,
		StudentName:  strings.TrimSpace(req.StudentName),
		StudentEmail: strings.TrimSpace(req.StudentEmail),
		StudentPhone: strings.TrimSpace(req.StudentPhone),
		Note:         req.Note,
	}
	if err := s.slots.Book(ctx, &booking); err != nil {
		if errors.Is(err, repository.ErrAlreadyBooked) {
			s.observe("conflict")
			return nil, appErrors.ErrSlotTaken
		}
		s.observe("error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to book slot")
	}

	s.observe("booked")
	s.logger.Sugar().Infow("slot booked", "slot_id", booking.SlotID, "booking_id", booking.ID)

	if s.notifier != nil {
		s.notifier.EnqueueBookingConfirmation(booking, *slot)
	}
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, weekCachePattern); err != nil {
			s.logger.Sugar().Warnw("failed to invalidate week cache", "error", err)
		}
	}

	return &dto.BookResponse{BookingID: booking.ID, SlotID: booking.SlotID}, nil
}

func (s *BookingService) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveBooking(outcome)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		switch first.Tag() {
		case "required":
			return "missing required field " + first.Field()
		case "email":
			return "invalid email address"
		case "phone":
			return "invalid phone number"
		default:
			return "invalid value for field " + first.Field()
		}
	}
	return appErrors.ErrValidation.Message
}
