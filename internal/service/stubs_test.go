package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/maayan-lessons/booking-api/internal/models"
	"github.com/maayan-lessons/booking-api/internal/repository"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
)

type stubSlotStore struct {
	mu sync.Mutex

	slots       []models.Slot
	listErr     error
	listCalls   int
	insertCalls int
	inserted    []models.Slot

	setBookedCalls []string
	setBookedErr   error
	rangeCalls     []time.Time
	rangeCount     int64

	booked    map[string]bool
	bookCalls int
	bookErr   error
}

func (s *stubSlotStore) ListRange(_ context.Context, from, to time.Time) ([]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Slot
	for _, slot := range s.slots {
		if !slot.StartsAt.Before(from) && slot.StartsAt.Before(to) {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *stubSlotStore) GetByID(_ context.Context, id string) (*models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if slot.ID == id {
			copied := slot
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubSlotStore) InsertBatch(_ context.Context, slots []models.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	s.inserted = append(s.inserted, slots...)
	return nil
}

func (s *stubSlotStore) SetBooked(_ context.Context, id string, booked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setBookedErr != nil {
		return s.setBookedErr
	}
	s.setBookedCalls = append(s.setBookedCalls, id)
	return nil
}

func (s *stubSlotStore) SetBookedRange(_ context.Context, from, to time.Time, booked bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rangeCalls = append(s.rangeCalls, from, to)
	return s.rangeCount, nil
}

// Book mirrors the atomic claim: exactly one caller wins per slot.
func (s *stubSlotStore) Book(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookCalls++
	if s.bookErr != nil {
		return s.bookErr
	}
	if s.booked == nil {
		s.booked = make(map[string]bool)
	}
	if s.booked[booking.SlotID] {
		return repository.ErrAlreadyBooked
	}
	s.booked[booking.SlotID] = true
	if booking.ID == "" {
		booking.ID = "booking-" + booking.SlotID
	}
	return nil
}

type stubBookingStore struct {
	latest      map[string]models.Booking
	deleteCalls []string
	deleted     int64
}

func (s *stubBookingStore) LatestBySlotIDs(_ context.Context, slotIDs []string) (map[string]models.Booking, error) {
	out := make(map[string]models.Booking)
	for _, id := range slotIDs {
		if b, ok := s.latest[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}

func (s *stubBookingStore) DeleteBySlot(_ context.Context, slotID string) (int64, error) {
	s.deleteCalls = append(s.deleteCalls, slotID)
	return s.deleted, nil
}

type stubSettingsStore struct {
	settings   *models.AppSettings
	getErr     error
	updateErr  error
	lastUpdate *models.AppSettings
}

func (s *stubSettingsStore) Get(_ context.Context) (*models.AppSettings, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.settings, nil
}

func (s *stubSettingsStore) Update(_ context.Context, settings *models.AppSettings) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastUpdate = settings
	s.settings = settings
	return nil
}

type stubCache struct {
	mu sync.Mutex

	store           map[string][]byte
	invalidations   int
	lastPattern     string
	setCalls        int
	disableSetStore bool
}

func (s *stubCache) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.disableSetStore {
		return nil
	}
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCache) DeleteByPattern(_ context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidations++
	s.lastPattern = pattern
	s.store = nil
	return nil
}

type stubNotifier struct {
	mu    sync.Mutex
	calls []models.Booking
}

func (s *stubNotifier) EnqueueBookingConfirmation(booking models.Booking, _ models.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, booking)
}

type stubObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (s *stubObserver) ObserveBooking(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, outcome)
}

func defaultSettings() *models.AppSettings {
	return &models.AppSettings{ID: models.SettingsRowID, HoursFrom: 7, HoursTo: 21, TZ: "UTC"}
}
