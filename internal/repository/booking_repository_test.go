package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newBookingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestBookingRepositoryLatestBySlotIDs(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "slot_id", "student_name", "student_email", "student_phone", "note", "created_at"}).
		AddRow("b-1", "slot-1", "Dana", "dana@example.com", "+972501234567", nil, now).
		AddRow("b-2", "slot-2", "Noam", "noam@example.com", "+972509876543", nil, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT ON (slot_id)")).
		WillReturnRows(rows)

	latest, err := repo.LatestBySlotIDs(context.Background(), []string{"slot-1", "slot-2"})
	require.NoError(t, err)
	require.Len(t, latest, 2)
	require.Equal(t, "Dana", latest["slot-1"].StudentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryLatestBySlotIDsEmpty(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	latest, err := repo.LatestBySlotIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, latest)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryDeleteBySlot(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE slot_id = $1")).
		WithArgs("slot-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteBySlot(context.Background(), "slot-1")
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
