package models

import "time"

// SettingsRowID is the primary key of the singleton app_settings row.
const SettingsRowID = 1

// AppSettings is the singleton row holding the display hour range and the
// timezone used for the weekly grid and day-level admin operations.
// Invariant: 0 <= HoursFrom < HoursTo <= 24.
type AppSettings struct {
	ID        int       `db:"id" json:"-"`
	HoursFrom int       `db:"hours_from" json:"hours_from"`
	HoursTo   int       `db:"hours_to" json:"hours_to"`
	TZ        string    `db:"tz" json:"tz"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// Location resolves the configured timezone, falling back to UTC when the
// stored name fails to load.
func (s AppSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.TZ)
	if err != nil {
		return time.UTC
	}
	return loc
}
