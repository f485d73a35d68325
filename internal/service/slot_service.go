package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/maayan-lessons/booking-api/internal/dto"
	"github.com/maayan-lessons/booking-api/internal/models"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
)

const weekCachePattern = "slots:public:*"

type slotStore interface {
	ListRange(ctx context.Context, from, to time.Time) ([]models.Slot, error)
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	SetBooked(ctx context.Context, id string, booked bool) error
	SetBookedRange(ctx context.Context, from, to time.Time, booked bool) (int64, error)
}

type bookingStore interface {
	LatestBySlotIDs(ctx context.Context, slotIDs []string) (map[string]models.Booking, error)
	DeleteBySlot(ctx context.Context, slotID string) (int64, error)
}

type settingsStore interface {
	Get(ctx context.Context) (*models.AppSettings, error)
}

type weekCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// SlotService serves the public and admin week views and handles slot
// blocking.
type SlotService struct {
	slots    slotStore
	bookings bookingStore
	settings settingsStore
	cache    weekCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSlotService constructs a SlotService.
func NewSlotService(slots slotStore, bookings bookingStore, settings settingsStore, cache weekCache, cacheTTL time.Duration, logger *zap.Logger) *SlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{
		slots:    slots,
		bookings: bookings,
		settings: settings,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// PublicWeek returns the seven-day slot list starting at the Sunday of the
// requested instant. Responses are cached briefly; every mutation path
// invalidates the cache, so the TTL only bounds staleness across processes.
func (s *SlotService) PublicWeek(ctx context.Context, weekStart time.Time) (*dto.PublicWeekResponse, error) {
	start := StartOfWeek(weekStart)
	key := fmt.Sprintf("slots:public:%s", start.Format("2006-01-02"))

	if s.cache != nil {
		var cached dto.PublicWeekResponse
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	slots, err := s.slots.ListRange(ctx, start, start.AddDate(0, 0, 7))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week slots")
	}

	resp := &dto.PublicWeekResponse{
		WeekStart: start,
		Slots:     make([]dto.PublicSlot, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, dto.PublicSlot{
			ID:       slot.ID,
			StartsAt: slot.StartsAt,
			EndsAt:   slot.EndsAt,
			IsBooked: slot.IsBooked,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			s.logger.Sugar().Warnw("failed to cache week slots", "key", key, "error", err)
		}
	}

	return resp, nil
}

// AdminWeek returns the week's slots with their latest bookings plus the
// prebuilt display matrix.
func (s *SlotService) AdminWeek(ctx context.Context, weekStart time.Time) (*dto.AdminWeekResponse, error) {
	start := StartOfWeek(weekStart)

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	slots, err := s.slots.ListRange(ctx, start, start.AddDate(0, 0, 7))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week slots")
	}

	bookedIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.IsBooked {
			bookedIDs = append(bookedIDs, slot.ID)
		}
	}
	latest, err := s.bookings.LatestBySlotIDs(ctx, bookedIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}

	resp := &dto.AdminWeekResponse{
		WeekStart: start,
		Slots:     make([]dto.AdminSlot, 0, len(slots)),
		Grid:      BuildWeekGrid(slots, settings),
	}
	for _, slot := range slots {
		adminSlot := dto.AdminSlot{
			ID:       slot.ID,
			StartsAt: slot.StartsAt,
			EndsAt:   slot.EndsAt,
			IsBooked: slot.IsBooked,
		}
		if booking, ok := latest[slot.ID]; ok && slot.IsBooked {
			adminSlot.Booking = &dto.BookingBrief{
				StudentName:  booking.StudentName,
				StudentEmail: booking.StudentEmail,
				StudentPhone: booking.StudentPhone,
				Note:         booking.Note,
				CreatedAt:    booking.CreatedAt,
			}
		}
		resp.Slots = append(resp.Slots, adminSlot)
	}

	return resp, nil
}

// BlockSlot marks a single slot unavailable without recording a booking.
func (s *SlotService) BlockSlot(ctx context.Context, slotID string) error {
	if err := s.slots.SetBooked(ctx, slotID, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrSlotNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to block slot")
	}
	s.invalidate(ctx)
	return nil
}

// ReleaseSlot frees a single slot. Any booking rows tied to the slot are
// removed first, so releasing a student's reservation also erases it.
func (s *SlotService) ReleaseSlot(ctx context.Context, slotID string) error {
	deleted, err := s.bookings.DeleteBySlot(ctx, slotID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear bookings")
	}
	if err := s.slots.SetBooked(ctx, slotID, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrSlotNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to release slot")
	}
	if deleted > 0 {
		s.logger.Sugar().Infow("released booked slot", "slot_id", slotID, "bookings_deleted", deleted)
	}
	s.invalidate(ctx)
	return nil
}

// BlockDay marks every slot starting within the local calendar day as
// unavailable and reports the affected count.
func (s *SlotService) BlockDay(ctx context.Context, date string) (int64, error) {
	return s.toggleDay(ctx, date, true)
}

// ReleaseDay frees every slot starting within the local calendar day.
// Unlike ReleaseSlot, booking rows are kept: the bulk path only flips the
// flag, so a released day can still show stale briefs until the slot is
// rebooked. Kept to match the established admin behaviour.
func (s *SlotService) ReleaseDay(ctx context.Context, date string) (int64, error) {
	return s.toggleDay(ctx, date, false)
}

func (s *SlotService) toggleDay(ctx context.Context, date string, booked bool) (int64, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return 0, err
	}

	dayStart, err := parseLocalDate(date, settings.Location())
	if err != nil {
		return 0, err
	}

	count, err := s.slots.SetBookedRange(ctx, dayStart, dayStart.AddDate(0, 0, 1), booked)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle day")
	}
	s.invalidate(ctx)
	return count, nil
}

func (s *SlotService) loadSettings(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "settings not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return settings, nil
}

func (s *SlotService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, weekCachePattern); err != nil {
		s.logger.Sugar().Warnw("failed to invalidate week cache", "error", err)
	}
}
