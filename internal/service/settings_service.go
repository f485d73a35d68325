package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/maayan-lessons/booking-api/internal/dto"
	"github.com/maayan-lessons/booking-api/internal/models"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
)

// knownTimezones short-circuits validation for the zones the tutor actually
// uses; anything else must look like an IANA name and load.
var knownTimezones = map[string]struct{}{
	"Asia/Jerusalem":      {},
	"UTC":                 {},
	"Europe/London":       {},
	"Europe/Berlin":       {},
	"America/New_York":    {},
	"America/Los_Angeles": {},
}

var ianaZonePattern = regexp.MustCompile(`^[A-Za-z]+(?:[_-][A-Za-z]+)*(?:/[A-Za-z]+(?:[_-][A-Za-z]+)*)+$`)

type settingsReadWriter interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, settings *models.AppSettings) error
}

// SettingsService reads and updates the single app_settings row.
type SettingsService struct {
	store     settingsReadWriter
	cache     cacheInvalidator
	defaultTZ string
	logger    *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(store settingsReadWriter, cache cacheInvalidator, defaultTZ string, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, cache: cache, defaultTZ: defaultTZ, logger: logger}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "settings not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return &dto.SettingsResponse{
		HoursFrom: settings.HoursFrom,
		HoursTo:   settings.HoursTo,
		TZ:        settings.TZ,
		UpdatedAt: settings.UpdatedAt,
	}, nil
}

// Update validates and persists the display hour range and timezone. An
// unusable timezone falls back to the default rather than failing the save.
func (s *SettingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if req.HoursFrom < 0 || req.HoursFrom > 23 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hoursFrom must be between 0 and 23")
	}
	if req.HoursTo < 1 || req.HoursTo > 24 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hoursTo must be between 1 and 24")
	}
	if req.HoursFrom >= req.HoursTo {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hoursFrom must be before hoursTo")
	}

	settings := &models.AppSettings{
		ID:        models.SettingsRowID,
		HoursFrom: req.HoursFrom,
		HoursTo:   req.HoursTo,
		TZ:        s.sanitizeTimezone(req.TZ),
	}
	if err := s.store.Update(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update settings")
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, weekCachePattern); err != nil {
			s.logger.Sugar().Warnw("failed to invalidate week cache", "error", err)
		}
	}

	return &dto.SettingsResponse{
		HoursFrom: settings.HoursFrom,
		HoursTo:   settings.HoursTo,
		TZ:        settings.TZ,
		UpdatedAt: settings.UpdatedAt,
	}, nil
}

func (s *SettingsService) sanitizeTimezone(tz string) string {
	if _, ok := knownTimezones[tz]; ok {
		return tz
	}
	if ianaZonePattern.MatchString(tz) {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	s.logger.Sugar().Warnw("rejected timezone, using default", "tz", tz, "default", s.defaultTZ)
	return s.defaultTZ
}
