package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/maayan-lessons/booking-api/internal/models"
)

// ErrAlreadyBooked signals that the atomic claim found the slot taken.
var ErrAlreadyBooked = errors.New("slot already booked")

// SlotRepository persists lesson slots.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository constructs the repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// ListRange returns slots starting within [from, to) ordered by start time.
func (r *SlotRepository) ListRange(ctx context.Context, from, to time.Time) ([]models.Slot, error) {
	const query = `SELECT id, starts_at, ends_at, is_booked, created_at
FROM slots WHERE starts_at >= $1 AND starts_at < $2 ORDER BY starts_at ASC`
	var slots []models.Slot
	if err := r.db.SelectContext(ctx, &slots, query, from, to); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// GetByID fetches a single slot. sql.ErrNoRows passes through untouched.
func (r *SlotRepository) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	const query = `SELECT id, starts_at, ends_at, is_booked, created_at FROM slots WHERE id = $1`
	var slot models.Slot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// InsertBatch seeds generated slots. Reseeding is idempotent: rows whose
// (starts_at, ends_at) pair already exists are skipped.
func (r *SlotRepository) InsertBatch(ctx context.Context, slots []models.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	const query = `INSERT INTO slots (id, starts_at, ends_at, is_booked, created_at)
VALUES (:id, :starts_at, :ends_at, :is_booked, :created_at)
ON CONFLICT (starts_at, ends_at) DO NOTHING`
	now := time.Now().UTC()
	for i := range slots {
		slot := &slots[i]
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, query, slot); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert slot: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

// SetBooked toggles the booked flag on a single slot. sql.ErrNoRows is
// returned when the slot does not exist.
func (r *SlotRepository) SetBooked(ctx context.Context, id string, booked bool) error {
	const query = `UPDATE slots SET is_booked = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, booked)
	if err != nil {
		return fmt.Errorf("set slot booked: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set slot booked rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetBookedRange bulk-toggles the booked flag for every slot starting
// within [from, to) and reports the affected count.
func (r *SlotRepository) SetBookedRange(ctx context.Context, from, to time.Time, booked bool) (int64, error) {
	const query = `UPDATE slots SET is_booked = $3 WHERE starts_at >= $1 AND starts_at < $2`
	res, err := r.db.ExecContext(ctx, query, from, to, booked)
	if err != nil {
		return 0, fmt.Errorf("set slots booked range: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set slots booked range rows: %w", err)
	}
	return affected, nil
}

// Book atomically claims a free slot and records the booking in one SQL
// statement. The claim and the insert share a single snapshot, so two
// concurrent calls for the same slot produce exactly one booking; the
// loser sees ErrAlreadyBooked. Application code must never replicate this
// check-then-set with separate queries.
func (r *SlotRepository) Book(ctx context.Context, booking *models.Booking) error {
	const query = `
WITH claimed AS (
    UPDATE slots SET is_booked = TRUE
    WHERE id = $1 AND is_booked = FALSE
    RETURNING id
)
INSERT INTO bookings (id, slot_id, student_name, student_email, student_phone, note, created_at)
SELECT $2, claimed.id, $3, $4, $5, $6, $7 FROM claimed
RETURNING id`

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, query,
		booking.SlotID,
		booking.ID,
		booking.StudentName,
		booking.StudentEmail,
		booking.StudentPhone,
		booking.Note,
		booking.CreatedAt,
	).Scan(&booking.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAlreadyBooked
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyBooked
		}
		return fmt.Errorf("book slot: %w", err)
	}
	return nil
}
