package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maayan-lessons/booking-api/internal/dto"
	"github.com/maayan-lessons/booking-api/internal/models"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
)

func newBookingValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterPhoneValidation(v))
	return v
}

func validBookRequest() dto.BookRequest {
	return dto.BookRequest{
		SlotID:       "slot-1",
		StudentName:  "Dana Levi",
		StudentEmail: "dana@example.com",
		StudentPhone: "+972 50-123-4567",
	}
}

func freeSlotStore() *stubSlotStore {
	start := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)
	return &stubSlotStore{slots: []models.Slot{
		{ID: "slot-1", StartsAt: start, EndsAt: start.Add(time.Hour)},
	}}
}

func TestBookSuccess(t *testing.T) {
	slots := freeSlotStore()
	cache := &stubCache{}
	notifier := &stubNotifier{}
	observer := &stubObserver{}
	svc := NewBookingService(slots, cache, notifier, observer, newBookingValidator(t), nil)

	resp, err := svc.Book(context.Background(), validBookRequest())
	require.NoError(t, err)
	assert.Equal(t, "slot-1", resp.SlotID)
	assert.NotEmpty(t, resp.BookingID)
	assert.Equal(t, 1, cache.invalidations)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "Dana Levi", notifier.calls[0].StudentName)
	assert.Equal(t, []string{"booked"}, observer.outcomes)
}

func TestBookInvalidEmailNeverTouchesStore(t *testing.T) {
	slots := freeSlotStore()
	svc := NewBookingService(slots, nil, nil, nil, newBookingValidator(t), nil)

	req := validBookRequest()
	req.StudentEmail = "abc"
	_, err := svc.Book(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "invalid email address", appErr.Message)
	assert.Zero(t, slots.bookCalls)
}

func TestBookInvalidPhoneRejected(t *testing.T) {
	svc := NewBookingService(freeSlotStore(), nil, nil, nil, newBookingValidator(t), nil)

	req := validBookRequest()
	req.StudentPhone = "12ab5"
	_, err := svc.Book(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "invalid phone number", appErrors.FromError(err).Message)
}

func TestBookPhoneAcceptsSpacesAndDashes(t *testing.T) {
	svc := NewBookingService(freeSlotStore(), nil, nil, nil, newBookingValidator(t), nil)

	req := validBookRequest()
	req.StudentPhone = "(050) 123-4567"
	_, err := svc.Book(context.Background(), req)
	require.NoError(t, err)
}

func TestBookUnknownSlot(t *testing.T) {
	svc := NewBookingService(&stubSlotStore{}, nil, nil, nil, newBookingValidator(t), nil)

	_, err := svc.Book(context.Background(), validBookRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotNotFound.Code, appErrors.FromError(err).Code)
}

func TestBookConflictMapsToSlotTaken(t *testing.T) {
	slots := freeSlotStore()
	slots.booked = map[string]bool{"slot-1": true}
	notifier := &stubNotifier{}
	svc := NewBookingService(slots, nil, notifier, nil, newBookingValidator(t), nil)

	_, err := svc.Book(context.Background(), validBookRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotTaken.Code, appErrors.FromError(err).Code)
	assert.Empty(t, notifier.calls)
}

func TestBookStoreErrorMapsToInternal(t *testing.T) {
	slots := freeSlotStore()
	slots.bookErr = errors.New("connection reset")
	svc := NewBookingService(slots, nil, nil, nil, newBookingValidator(t), nil)

	_, err := svc.Book(context.Background(), validBookRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestBookConcurrentRequestsExactlyOneWins(t *testing.T) {
	slots := freeSlotStore()
	svc := NewBookingService(slots, &stubCache{}, &stubNotifier{}, nil, newBookingValidator(t), nil)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validBookRequest()
			_, results[i] = svc.Book(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var won, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case appErrors.FromError(err).Code == appErrors.ErrSlotTaken.Code:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, conflicted)
}
