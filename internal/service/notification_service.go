package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maayan-lessons/booking-api/internal/models"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/jobs"
	"github.com/maayan-lessons/booking-api/pkg/mailer"
)

const jobTypeBookingEmail = "booking_email"

type notificationSettings interface {
	Get(ctx context.Context) (*models.AppSettings, error)
}

// NotificationService sends booking emails through a background queue so
// the booking response never waits on the mail provider. Delivery is
// best-effort: failures are logged, never retried.
type NotificationService struct {
	sender   mailer.Sender
	settings notificationSettings
	queue    *jobs.Queue
	owner    string
	logger   *zap.Logger
}

type bookingEmailPayload struct {
	Booking models.Booking
	Slot    models.Slot
}

// NewNotificationService constructs the service and its queue. A nil sender
// disables dispatch entirely; Enqueue calls become no-ops.
func NewNotificationService(sender mailer.Sender, settings notificationSettings, owner string, workers int, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		sender:   sender,
		settings: settings,
		owner:    owner,
		logger:   logger,
	}
	s.queue = jobs.NewQueue("notifications", s.handle, jobs.QueueConfig{
		Workers: workers,
		Logger:  logger,
	})
	return s
}

// Start launches the queue workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// EnqueueBookingConfirmation queues confirmation emails for a fresh
// booking. Queue pressure drops the job rather than blocking the caller.
func (s *NotificationService) EnqueueBookingConfirmation(booking models.Booking, slot models.Slot) {
	if s.sender == nil {
		return
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeBookingEmail,
		Payload: bookingEmailPayload{Booking: booking, Slot: slot},
	})
	if err != nil {
		s.logger.Sugar().Warnw("failed to enqueue booking email", "booking_id", booking.ID, "error", err)
	}
}

// SendTest delivers a test email synchronously so the admin can verify the
// mail configuration.
func (s *NotificationService) SendTest(ctx context.Context, to string) error {
	if s.sender == nil {
		return appErrors.Clone(appErrors.ErrValidation, "mail is not configured")
	}
	if to == "" {
		to = s.owner
	}
	if to == "" {
		return appErrors.Clone(appErrors.ErrValidation, "no recipient configured")
	}
	msg := mailer.Message{
		To:      to,
		Subject: "Test email",
		HTML:    "<p>Mail delivery is working.</p>",
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send test email")
	}
	return nil
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(bookingEmailPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	loc := s.location(ctx)
	start := payload.Slot.StartsAt.In(loc)
	end := payload.Slot.EndsAt.In(loc)

	if err := s.sender.Send(ctx, s.studentEmail(payload.Booking, start, end)); err != nil {
		s.logger.Sugar().Warnw("student confirmation failed",
			"booking_id", payload.Booking.ID, "error", err)
	}

	if s.owner != "" {
		if err := s.sender.Send(ctx, s.ownerEmail(payload.Booking, start, end)); err != nil {
			s.logger.Sugar().Warnw("owner notification failed",
				"booking_id", payload.Booking.ID, "error", err)
		}
	}

	return nil
}

func (s *NotificationService) studentEmail(b models.Booking, start, end time.Time) mailer.Message {
	return mailer.Message{
		To:      b.StudentEmail,
		Subject: fmt.Sprintf("Lesson confirmed: %s", start.Format("Mon, 2 Jan 15:04")),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your lesson is confirmed for <strong>%s – %s</strong>.</p><p>See you then!</p>",
			html.EscapeString(b.StudentName),
			start.Format("Monday, 2 January 2006 15:04"),
			end.Format("15:04"),
		),
	}
}

func (s *NotificationService) ownerEmail(b models.Booking, start, end time.Time) mailer.Message {
	note := ""
	if b.Note != nil && *b.Note != "" {
		note = fmt.Sprintf("<p>Note: %s</p>", html.EscapeString(*b.Note))
	}
	return mailer.Message{
		To:      s.owner,
		Subject: fmt.Sprintf("New booking: %s on %s", b.StudentName, start.Format("Mon 2 Jan")),
		HTML: fmt.Sprintf(
			"<p>New lesson booked for <strong>%s – %s</strong>.</p><p>Student: %s<br>Email: %s<br>Phone: %s</p>%s",
			start.Format("Monday, 2 January 2006 15:04"),
			end.Format("15:04"),
			html.EscapeString(b.StudentName),
			html.EscapeString(b.StudentEmail),
			html.EscapeString(b.StudentPhone),
			note,
		),
	}
}

func (s *NotificationService) location(ctx context.Context) *time.Location {
	if s.settings != nil {
		if settings, err := s.settings.Get(ctx); err == nil {
			return settings.Location()
		}
	}
	return time.UTC
}
