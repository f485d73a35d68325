package models

import "time"

// Slot is a fixed time interval eligible for a lesson booking. Slots are
// unique on (starts_at, ends_at) and are never deleted in normal operation;
// block/release and bookings only flip the is_booked flag.
type Slot struct {
	ID        string    `db:"id" json:"id"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	EndsAt    time.Time `db:"ends_at" json:"ends_at"`
	IsBooked  bool      `db:"is_booked" json:"is_booked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
