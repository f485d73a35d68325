package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maayan-lessons/booking-api/internal/models"
)

func TestBuildWeekGridRowStartsFromSettings(t *testing.T) {
	settings := &models.AppSettings{HoursFrom: 8, HoursTo: 11, TZ: "UTC"}
	grid := BuildWeekGrid(nil, settings)
	assert.Equal(t, []int{480, 540, 600}, grid.RowStarts)
	assert.Empty(t, grid.Days)
}

func TestBuildWeekGridBucketsByLocalTime(t *testing.T) {
	settings := &models.AppSettings{HoursFrom: 7, HoursTo: 21, TZ: "Asia/Jerusalem"}
	// 11:00 UTC on a Monday is 14:00 in Jerusalem during August.
	start := time.Date(2026, 8, 24, 11, 0, 0, 0, time.UTC)
	slots := []models.Slot{
		{ID: "slot-1", StartsAt: start, EndsAt: start.Add(time.Hour), IsBooked: true},
	}

	grid := BuildWeekGrid(slots, settings)
	cell, ok := grid.Days[1][14*60]
	require.True(t, ok)
	assert.Equal(t, "slot-1", cell.SlotID)
	assert.True(t, cell.IsBooked)
}

func TestBuildWeekGridSkipsOffHourSlots(t *testing.T) {
	settings := &models.AppSettings{HoursFrom: 7, HoursTo: 21, TZ: "UTC"}
	start := time.Date(2026, 8, 24, 14, 30, 0, 0, time.UTC)
	slots := []models.Slot{
		{ID: "half-past", StartsAt: start, EndsAt: start.Add(time.Hour)},
	}

	grid := BuildWeekGrid(slots, settings)
	assert.Empty(t, grid.Days)
}

func TestBuildWeekGridFirstSlotWinsPerCell(t *testing.T) {
	settings := &models.AppSettings{HoursFrom: 7, HoursTo: 21, TZ: "UTC"}
	start := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)
	slots := []models.Slot{
		{ID: "first", StartsAt: start, EndsAt: start.Add(time.Hour)},
		{ID: "second", StartsAt: start, EndsAt: start.Add(45 * time.Minute)},
	}

	grid := BuildWeekGrid(slots, settings)
	assert.Equal(t, "first", grid.Days[1][14*60].SlotID)
}

func TestStartOfWeekNormalisesToSunday(t *testing.T) {
	wednesday := time.Date(2026, 8, 26, 17, 45, 0, 0, time.UTC)
	start := StartOfWeek(wednesday)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), start)

	// A Sunday stays put.
	assert.Equal(t, start, StartOfWeek(start))
}
