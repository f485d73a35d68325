package models

import "time"

// Booking is a student's reservation against a specific slot. A slot may
// accumulate historical bookings over time; the most recent one is the
// active reservation while the slot is booked.
type Booking struct {
	ID           string    `db:"id" json:"id"`
	SlotID       string    `db:"slot_id" json:"slot_id"`
	StudentName  string    `db:"student_name" json:"student_name"`
	StudentEmail string    `db:"student_email" json:"student_email"`
	StudentPhone string    `db:"student_phone" json:"student_phone"`
	Note         *string   `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
