package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/maayan-lessons/booking-api/internal/models"
)

func newSlotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSlotRepositoryListRange(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	from := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	rows := sqlmock.NewRows([]string{"id", "starts_at", "ends_at", "is_booked", "created_at"}).
		AddRow("slot-1", from.Add(14*time.Hour), from.Add(15*time.Hour), false, from).
		AddRow("slot-2", from.Add(15*time.Hour), from.Add(16*time.Hour), true, from)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, starts_at, ends_at, is_booked, created_at")).
		WithArgs(from, to).
		WillReturnRows(rows)

	slots, err := repo.ListRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.Equal(t, "slot-1", slots[0].ID)
	require.True(t, slots[1].IsBooked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, starts_at, ends_at, is_booked, created_at FROM slots WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryInsertBatch(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	start := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slots")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slots")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	slots := []models.Slot{
		{StartsAt: start, EndsAt: start.Add(time.Hour)},
		{StartsAt: start.Add(time.Hour), EndsAt: start.Add(2 * time.Hour)},
	}
	require.NoError(t, repo.InsertBatch(context.Background(), slots))
	require.NotEmpty(t, slots[0].ID)
	require.False(t, slots[0].CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryInsertBatchEmpty(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	require.NoError(t, repo.InsertBatch(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositorySetBookedNotFound(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE slots SET is_booked = $2 WHERE id = $1")).
		WithArgs("missing", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetBooked(context.Background(), "missing", true)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositorySetBookedRange(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE slots SET is_booked = $3")).
		WithArgs(from, to, true).
		WillReturnResult(sqlmock.NewResult(0, 5))

	count, err := repo.SetBookedRange(context.Background(), from, to, true)
	require.NoError(t, err)
	require.Equal(t, int64(5), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryBookSuccess(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	mock.ExpectQuery("WITH claimed AS").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("booking-1"))

	booking := &models.Booking{
		ID:           "booking-1",
		SlotID:       "slot-1",
		StudentName:  "Dana",
		StudentEmail: "dana@example.com",
		StudentPhone: "+972501234567",
	}
	require.NoError(t, repo.Book(context.Background(), booking))
	require.Equal(t, "booking-1", booking.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryBookAlreadyBooked(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	// The claim matches zero rows when the slot is taken, so the insert
	// returns nothing.
	mock.ExpectQuery("WITH claimed AS").
		WillReturnError(sql.ErrNoRows)

	err := repo.Book(context.Background(), &models.Booking{SlotID: "slot-1"})
	require.ErrorIs(t, err, ErrAlreadyBooked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryBookUniqueViolation(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	mock.ExpectQuery("WITH claimed AS").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Book(context.Background(), &models.Booking{SlotID: "slot-1"})
	require.ErrorIs(t, err, ErrAlreadyBooked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryBookOtherErrorPassesThrough(t *testing.T) {
	db, mock, cleanup := newSlotRepoMock(t)
	defer cleanup()

	repo := NewSlotRepository(db)
	mock.ExpectQuery("WITH claimed AS").
		WillReturnError(errors.New("connection reset"))

	err := repo.Book(context.Background(), &models.Booking{SlotID: "slot-1"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAlreadyBooked)
	require.NoError(t, mock.ExpectationsWereMet())
}
