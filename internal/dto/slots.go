package dto

import "time"

// PublicSlot is the camelCase projection served to the student-facing grid.
type PublicSlot struct {
	ID       string    `json:"id"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	IsBooked bool      `json:"isBooked"`
}

// PublicWeekResponse wraps a week of public slots.
type PublicWeekResponse struct {
	WeekStart time.Time    `json:"weekStart"`
	Slots     []PublicSlot `json:"slots"`
}

// BookingBrief is the latest booking attached to an admin slot. A booked
// slot without a brief was blocked by the admin rather than reserved.
type BookingBrief struct {
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	StudentPhone string    `json:"student_phone"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminSlot is a slot row with its most recent booking, if any.
type AdminSlot struct {
	ID       string        `json:"id"`
	StartsAt time.Time     `json:"starts_at"`
	EndsAt   time.Time     `json:"ends_at"`
	IsBooked bool          `json:"is_booked"`
	Booking  *BookingBrief `json:"booking,omitempty"`
}

// GridCell references a slot placed on the weekly matrix.
type GridCell struct {
	SlotID   string `json:"slotId"`
	IsBooked bool   `json:"isBooked"`
}

// WeekGrid is a sparse day->minute-of-day lookup for rendering fixed hourly
// rows. RowStarts lists the minute-of-day for each displayed row, derived
// from the settings hour range.
type WeekGrid struct {
	RowStarts []int                    `json:"rowStarts"`
	Days      map[int]map[int]GridCell `json:"days"`
}

// AdminWeekResponse carries the admin week view: raw slots plus the
// prebuilt display matrix.
type AdminWeekResponse struct {
	WeekStart time.Time   `json:"weekStart"`
	Slots     []AdminSlot `json:"slots"`
	Grid      WeekGrid    `json:"grid"`
}

// SlotActionRequest targets a single slot for block/release.
type SlotActionRequest struct {
	SlotID string `json:"slotId" binding:"required"`
}

// DayActionRequest targets every slot starting within a local calendar day.
type DayActionRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

// DayActionResponse reports how many slots the bulk toggle touched.
type DayActionResponse struct {
	Count int64 `json:"count"`
}

// SeedWeeksRequest generates slots for one or more weeks.
type SeedWeeksRequest struct {
	WeekStart string `json:"weekStart" binding:"required"` // YYYY-MM-DD
	Weeks     int    `json:"weeks"`
	Lesson    int    `json:"lesson"`
	Buffer    int    `json:"buffer"`
}

// SeedWeeksResponse reports how many slots were generated (pre-dedup).
type SeedWeeksResponse struct {
	Generated int `json:"generated"`
}

// CreateSlotRequest adds a single one-off slot outside the working-hour
// template. StartLocal is wall-clock time in the settings timezone.
type CreateSlotRequest struct {
	StartLocal  string `json:"startLocal" binding:"required"` // 2006-01-02T15:04
	DurationMin int    `json:"durationMin"`
}
