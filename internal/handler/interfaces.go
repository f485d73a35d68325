package handler

import (
	"context"
	"time"

	"github.com/maayan-lessons/booking-api/internal/dto"
)

// AuthService issues and validates admin session tokens.
type AuthService interface {
	Login(password string) (string, time.Duration, error)
	ValidateToken(token string) error
	CookieName() string
}

// SlotService serves week views and slot blocking.
type SlotService interface {
	PublicWeek(ctx context.Context, weekStart time.Time) (*dto.PublicWeekResponse, error)
	AdminWeek(ctx context.Context, weekStart time.Time) (*dto.AdminWeekResponse, error)
	BlockSlot(ctx context.Context, slotID string) error
	ReleaseSlot(ctx context.Context, slotID string) error
	BlockDay(ctx context.Context, date string) (int64, error)
	ReleaseDay(ctx context.Context, date string) (int64, error)
}

// ScheduleService seeds and creates slots.
type ScheduleService interface {
	SeedWeeks(ctx context.Context, weekStart string, weeks, lessonMin, bufferMin int) (int, error)
	CreateSlot(ctx context.Context, startLocal string, durationMin int) error
}

// BookingService handles student bookings.
type BookingService interface {
	Book(ctx context.Context, req dto.BookRequest) (*dto.BookResponse, error)
}

// SettingsService reads and updates app settings.
type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

// ExportService renders downloadable week schedules.
type ExportService interface {
	WeekCSV(ctx context.Context, weekStart time.Time) ([]byte, string, error)
	WeekPDF(ctx context.Context, weekStart time.Time) ([]byte, string, error)
}

// NotificationService sends admin-triggered test emails.
type NotificationService interface {
	SendTest(ctx context.Context, to string) error
}
