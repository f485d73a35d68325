package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/export"
)

var weekdayHeaders = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ExportService renders the admin week view as a downloadable schedule.
type ExportService struct {
	slots    slotStore
	bookings bookingStore
	settings settingsStore
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(slots slotStore, bookings bookingStore, settings settingsStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		slots:    slots,
		bookings: bookings,
		settings: settings,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// WeekCSV renders the week grid as CSV.
func (s *ExportService) WeekCSV(ctx context.Context, weekStart time.Time) ([]byte, string, error) {
	data, start, err := s.weekDataset(ctx, weekStart)
	if err != nil {
		return nil, "", err
	}
	out, err := s.csv.Render(*data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return out, fmt.Sprintf("schedule-%s.csv", start.Format("2006-01-02")), nil
}

// WeekPDF renders the week grid as a landscape PDF.
func (s *ExportService) WeekPDF(ctx context.Context, weekStart time.Time) ([]byte, string, error) {
	data, start, err := s.weekDataset(ctx, weekStart)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("Week of %s", start.Format("2 January 2006"))
	out, err := s.pdf.Render(*data, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return out, fmt.Sprintf("schedule-%s.pdf", start.Format("2006-01-02")), nil
}

// weekDataset builds the tabular week view: one row per display hour, one
// column per weekday. Cells read Free, Blocked, or Booked with the student
// name when a booking exists.
func (s *ExportService) weekDataset(ctx context.Context, weekStart time.Time) (*export.Dataset, time.Time, error) {
	start := StartOfWeek(weekStart)

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, start, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}

	slots, err := s.slots.ListRange(ctx, start, start.AddDate(0, 0, 7))
	if err != nil {
		return nil, start, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week slots")
	}

	slotIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.IsBooked {
			slotIDs = append(slotIDs, slot.ID)
		}
	}
	latest, err := s.bookings.LatestBySlotIDs(ctx, slotIDs)
	if err != nil {
		return nil, start, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}

	grid := BuildWeekGrid(slots, settings)

	headers := append([]string{"Hour"}, weekdayHeaders...)
	rows := make([]map[string]string, 0, len(grid.RowStarts))
	for _, minute := range grid.RowStarts {
		row := map[string]string{
			"Hour": fmt.Sprintf("%02d:%02d", minute/60, minute%60),
		}
		for day := 0; day < 7; day++ {
			cell, ok := grid.Days[day][minute]
			if !ok {
				row[weekdayHeaders[day]] = ""
				continue
			}
			switch {
			case !cell.IsBooked:
				row[weekdayHeaders[day]] = "Free"
			default:
				if booking, ok := latest[cell.SlotID]; ok {
					row[weekdayHeaders[day]] = "Booked: " + booking.StudentName
				} else {
					row[weekdayHeaders[day]] = "Blocked"
				}
			}
		}
		rows = append(rows, row)
	}

	return &export.Dataset{Headers: headers, Rows: rows}, start, nil
}
