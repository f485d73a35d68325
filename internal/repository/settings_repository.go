package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/maayan-lessons/booking-api/internal/models"
)

// SettingsRepository persists the singleton app settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get fetches the singleton row. sql.ErrNoRows passes through untouched.
func (r *SettingsRepository) Get(ctx context.Context) (*models.AppSettings, error) {
	const query = `SELECT id, hours_from, hours_to, tz, updated_at FROM app_settings WHERE id = $1`
	var settings models.AppSettings
	if err := r.db.GetContext(ctx, &settings, query, models.SettingsRowID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update overwrites the singleton row.
func (r *SettingsRepository) Update(ctx context.Context, settings *models.AppSettings) error {
	const query = `UPDATE app_settings SET hours_from = $2, hours_to = $3, tz = $4, updated_at = $5 WHERE id = $1`
	settings.UpdatedAt = time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query,
		models.SettingsRowID, settings.HoursFrom, settings.HoursTo, settings.TZ, settings.UpdatedAt); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
