package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maayan-lessons/booking-api/internal/models"
	"github.com/maayan-lessons/booking-api/pkg/mailer"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
	done chan struct{}
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	if s.done != nil && len(s.sent) == cap(s.sent) {
		close(s.done)
	}
	return nil
}

func (s *recordingSender) messages() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailer.Message(nil), s.sent...)
}

func TestEnqueueBookingConfirmationSendsStudentAndOwnerEmails(t *testing.T) {
	sender := &recordingSender{sent: make([]mailer.Message, 0, 2), done: make(chan struct{})}
	settings := &stubSettingsStore{settings: defaultSettings()}
	svc := NewNotificationService(sender, settings, "tutor@example.com", 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	start := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)
	note := "first lesson"
	svc.EnqueueBookingConfirmation(models.Booking{
		ID:           "b-1",
		SlotID:       "slot-1",
		StudentName:  "Dana <script>",
		StudentEmail: "dana@example.com",
		StudentPhone: "+972501234567",
		Note:         &note,
	}, models.Slot{ID: "slot-1", StartsAt: start, EndsAt: start.Add(time.Hour)})

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatal("emails were not sent")
	}

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "dana@example.com", msgs[0].To)
	assert.Equal(t, "tutor@example.com", msgs[1].To)
	// Student-provided text is escaped before it lands in HTML.
	assert.Contains(t, msgs[0].HTML, "Dana &lt;script&gt;")
	assert.Contains(t, msgs[1].HTML, "first lesson")
}

func TestEnqueueIsNoOpWithoutSender(t *testing.T) {
	svc := NewNotificationService(nil, &stubSettingsStore{settings: defaultSettings()}, "", 1, nil)
	// Must not panic even though the queue never started.
	svc.EnqueueBookingConfirmation(models.Booking{ID: "b-1"}, models.Slot{ID: "slot-1"})
}

func TestSendTestRequiresConfiguredMail(t *testing.T) {
	svc := NewNotificationService(nil, &stubSettingsStore{settings: defaultSettings()}, "", 1, nil)
	require.Error(t, svc.SendTest(context.Background(), "someone@example.com"))
}

func TestSendTestFallsBackToOwner(t *testing.T) {
	sender := &recordingSender{}
	svc := NewNotificationService(sender, &stubSettingsStore{settings: defaultSettings()}, "tutor@example.com", 1, nil)

	require.NoError(t, svc.SendTest(context.Background(), ""))
	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "tutor@example.com", msgs[0].To)
}
