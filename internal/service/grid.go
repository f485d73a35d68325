package service

import (
	"time"

	"github.com/maayan-lessons/booking-api/internal/dto"
	"github.com/maayan-lessons/booking-api/internal/models"
)

// BuildWeekGrid buckets slots onto the weekly display matrix. Columns are
// weekdays (Sunday=0), rows are whole hours from hours_from up to but not
// including hours_to, both taken from settings. Bucketing happens in the
// settings timezone. Slots that do not start on an hour boundary are left
// out of the grid; they still appear in the flat slot list. When two slots
// share a cell the first by start order wins.
func BuildWeekGrid(slots []models.Slot, settings *models.AppSettings) dto.WeekGrid {
	loc := settings.Location()

	rows := make([]int, 0, settings.HoursTo-settings.HoursFrom)
	for h := settings.HoursFrom; h < settings.HoursTo; h++ {
		rows = append(rows, h*60)
	}

	days := make(map[int]map[int]dto.GridCell)
	for _, slot := range slots {
		local := slot.StartsAt.In(loc)
		startMin := local.Hour()*60 + local.Minute()
		if startMin%60 != 0 {
			continue
		}
		weekday := int(local.Weekday())
		if days[weekday] == nil {
			days[weekday] = make(map[int]dto.GridCell)
		}
		if _, taken := days[weekday][startMin]; taken {
			continue
		}
		days[weekday][startMin] = dto.GridCell{SlotID: slot.ID, IsBooked: slot.IsBooked}
	}

	return dto.WeekGrid{RowStarts: rows, Days: days}
}

// StartOfWeek normalises any instant to the UTC midnight of its Sunday.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
