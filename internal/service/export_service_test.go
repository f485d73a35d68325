package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maayan-lessons/booking-api/internal/models"
)

func exportFixtures() (*stubSlotStore, *stubBookingStore, *stubSettingsStore) {
	start := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC) // Monday
	slots := &stubSlotStore{slots: []models.Slot{
		{ID: "free", StartsAt: start, EndsAt: start.Add(time.Hour)},
		{ID: "booked", StartsAt: start.Add(time.Hour), EndsAt: start.Add(2 * time.Hour), IsBooked: true},
		{ID: "blocked", StartsAt: start.Add(2 * time.Hour), EndsAt: start.Add(3 * time.Hour), IsBooked: true},
	}}
	bookings := &stubBookingStore{latest: map[string]models.Booking{
		"booked": {ID: "b-1", SlotID: "booked", StudentName: "Dana"},
	}}
	settings := &stubSettingsStore{settings: &models.AppSettings{
		ID: models.SettingsRowID, HoursFrom: 14, HoursTo: 18, TZ: "UTC",
	}}
	return slots, bookings, settings
}

func TestWeekCSVCells(t *testing.T) {
	slots, bookings, settings := exportFixtures()
	svc := NewExportService(slots, bookings, settings, nil)

	out, filename, err := svc.WeekCSV(context.Background(), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "schedule-2026-08-23.csv", filename)

	content := string(out)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	// Header plus one row per display hour 14..17.
	require.Len(t, lines, 5)
	assert.Equal(t, "Hour,Sunday,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday", lines[0])
	assert.Contains(t, lines[1], "14:00")
	assert.Contains(t, lines[1], "Free")
	assert.Contains(t, lines[2], "Booked: Dana")
	assert.Contains(t, lines[3], "Blocked")
}

func TestWeekPDFRenders(t *testing.T) {
	slots, bookings, settings := exportFixtures()
	svc := NewExportService(slots, bookings, settings, nil)

	out, filename, err := svc.WeekPDF(context.Background(), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "schedule-2026-08-23.pdf", filename)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
