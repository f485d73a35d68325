package dto

import "time"

// SettingsResponse mirrors the singleton settings row.
type SettingsResponse struct {
	HoursFrom int       `json:"hours_from"`
	HoursTo   int       `json:"hours_to"`
	TZ        string    `json:"tz"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSettingsRequest updates the display hour range and timezone.
type UpdateSettingsRequest struct {
	HoursFrom int    `json:"hours_from" validate:"min=0,max=23"`
	HoursTo   int    `json:"hours_to" validate:"min=1,max=24"`
	TZ        string `json:"tz"`
}
