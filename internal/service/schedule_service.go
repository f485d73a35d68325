package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/maayan-lessons/booking-api/internal/models"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
)

// HourWindow is a wall-clock working window within a single day.
type HourWindow struct {
	Start string // "14:00"
	End   string // "20:45"
}

// WorkingHours maps weekday (Sunday=0) to that day's working windows.
type WorkingHours map[time.Weekday][]HourWindow

// DefaultWorkingHours is the tutor's weekly template. Windows are not
// persisted; they only feed slot generation.
var DefaultWorkingHours = WorkingHours{
	time.Sunday:    {{Start: "14:00", End: "20:00"}},
	time.Monday:    {{Start: "14:00", End: "20:45"}},
	time.Tuesday:   {{Start: "14:00", End: "20:00"}},
	time.Wednesday: {{Start: "14:00", End: "20:00"}},
	time.Thursday:  {{Start: "14:00", End: "18:00"}},
	time.Friday:    {{Start: "14:00", End: "18:00"}},
	time.Saturday:  {{Start: "14:00", End: "18:00"}},
}

type scheduleSlotWriter interface {
	InsertBatch(ctx context.Context, slots []models.Slot) error
}

type scheduleSettingsReader interface {
	Get(ctx context.Context) (*models.AppSettings, error)
}

// ScheduleService generates lesson slots from the working-hour template and
// seeds them into the store.
type ScheduleService struct {
	slots        scheduleSlotWriter
	settings     scheduleSettingsReader
	cache        cacheInvalidator
	hours        WorkingHours
	lessonMin    int
	bufferMin    int
	fallbackZone string
	logger       *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(slots scheduleSlotWriter, settings scheduleSettingsReader, cache cacheInvalidator, hours WorkingHours, lessonMin, bufferMin int, fallbackZone string, logger *zap.Logger) *ScheduleService {
	if hours == nil {
		hours = DefaultWorkingHours
	}
	if lessonMin <= 0 {
		lessonMin = 60
	}
	if bufferMin < 0 {
		bufferMin = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		slots:        slots,
		settings:     settings,
		cache:        cache,
		hours:        hours,
		lessonMin:    lessonMin,
		bufferMin:    bufferMin,
		fallbackZone: fallbackZone,
		logger:       logger,
	}
}

// GenerateWeek produces the slots for the seven days starting at weekStart.
// For each window the cursor advances by lesson+buffer minutes, emitting a
// slot only while the full lesson fits before the window end. Instants are
// stored in UTC; weekStart carries the local zone used for wall-clock math.
func GenerateWeek(weekStart time.Time, hours WorkingHours, lessonMin, bufferMin int) ([]models.Slot, error) {
	if lessonMin <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "lesson duration must be positive")
	}
	if bufferMin < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "buffer must not be negative")
	}

	loc := weekStart.Location()
	lesson := time.Duration(lessonMin) * time.Minute
	buffer := time.Duration(bufferMin) * time.Minute

	var slots []models.Slot
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		for _, window := range hours[day.Weekday()] {
			cursor, err := atClock(day, window.Start, loc)
			if err != nil {
				return nil, err
			}
			end, err := atClock(day, window.End, loc)
			if err != nil {
				return nil, err
			}
			for cursor.Before(end) {
				next := cursor.Add(lesson)
				if next.After(end) {
					break
				}
				slots = append(slots, models.Slot{
					StartsAt: cursor.UTC(),
					EndsAt:   next.UTC(),
				})
				cursor = next.Add(buffer)
			}
		}
	}
	return slots, nil
}

// SeedWeeks generates and persists slots for consecutive weeks starting at
// the given local date. Existing (starts_at, ends_at) rows are left alone,
// so reseeding is idempotent. Returns the number of generated slots.
func (s *ScheduleService) SeedWeeks(ctx context.Context, weekStart string, weeks, lessonMin, bufferMin int) (int, error) {
	if weeks <= 0 {
		weeks = 4
	}
	if lessonMin == 0 {
		lessonMin = s.lessonMin
	}
	if bufferMin == 0 {
		bufferMin = s.bufferMin
	}

	loc := s.location(ctx)
	base, err := parseLocalDate(weekStart, loc)
	if err != nil {
		return 0, err
	}

	var all []models.Slot
	for i := 0; i < weeks; i++ {
		weekSlots, err := GenerateWeek(base.AddDate(0, 0, i*7), s.hours, lessonMin, bufferMin)
		if err != nil {
			return 0, err
		}
		all = append(all, weekSlots...)
	}

	if err := s.slots.InsertBatch(ctx, all); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed slots")
	}

	s.invalidate(ctx)
	s.logger.Sugar().Infow("seeded slots", "week_start", weekStart, "weeks", weeks, "generated", len(all))
	return len(all), nil
}

// CreateSlot adds a single one-off slot outside the weekly template.
func (s *ScheduleService) CreateSlot(ctx context.Context, startLocal string, durationMin int) error {
	if durationMin == 0 {
		durationMin = s.lessonMin
	}
	if durationMin <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "duration must be positive")
	}

	loc := s.location(ctx)
	start, err := time.ParseInLocation("2006-01-02T15:04", startLocal, loc)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "startLocal must be formatted as YYYY-MM-DDTHH:MM")
	}

	slot := models.Slot{
		StartsAt: start.UTC(),
		EndsAt:   start.Add(time.Duration(durationMin) * time.Minute).UTC(),
	}
	if err := s.slots.InsertBatch(ctx, []models.Slot{slot}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create slot")
	}

	s.invalidate(ctx)
	return nil
}

func (s *ScheduleService) location(ctx context.Context) *time.Location {
	if s.settings != nil {
		if settings, err := s.settings.Get(ctx); err == nil {
			return settings.Location()
		}
	}
	if loc, err := time.LoadLocation(s.fallbackZone); err == nil {
		return loc
	}
	return time.UTC
}

func (s *ScheduleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, weekCachePattern); err != nil {
		s.logger.Sugar().Warnw("failed to invalidate week cache", "error", err)
	}
}

func atClock(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid working-hour value %q", clock))
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc), nil
}

func parseLocalDate(value string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
	}
	return parsed, nil
}
