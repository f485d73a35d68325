package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/maayan-lessons/booking-api/internal/models"
)

// BookingRepository reads and prunes booking rows. Creation happens in
// SlotRepository.Book as part of the atomic claim.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs the repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// LatestBySlotIDs returns the most recent booking per slot for the given
// slot ids.
func (r *BookingRepository) LatestBySlotIDs(ctx context.Context, slotIDs []string) (map[string]models.Booking, error) {
	if len(slotIDs) == 0 {
		return map[string]models.Booking{}, nil
	}
	const query = `SELECT DISTINCT ON (slot_id)
    id, slot_id, student_name, student_email, student_phone, note, created_at
FROM bookings WHERE slot_id = ANY($1)
ORDER BY slot_id, created_at DESC`
	var rows []models.Booking
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(slotIDs)); err != nil {
		return nil, fmt.Errorf("latest bookings by slot: %w", err)
	}
	result := make(map[string]models.Booking, len(rows))
	for _, b := range rows {
		result[b.SlotID] = b
	}
	return result, nil
}

// DeleteBySlot removes every booking row tied to the slot and reports the
// deleted count.
func (r *BookingRepository) DeleteBySlot(ctx context.Context, slotID string) (int64, error) {
	const query = `DELETE FROM bookings WHERE slot_id = $1`
	res, err := r.db.ExecContext(ctx, query, slotID)
	if err != nil {
		return 0, fmt.Errorf("delete bookings by slot: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete bookings rows: %w", err)
	}
	return deleted, nil
}
