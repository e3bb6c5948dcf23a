package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"

	"github.com/neuromancers/session-scheduler/internal/audit"
	"github.com/neuromancers/session-scheduler/internal/models"
	"github.com/neuromancers/session-scheduler/internal/payments"
)

// AuditTrail is satisfied by *audit.Dispatcher.
type AuditTrail interface {
	Dispatch(ev audit.Event)
}

// Grants is satisfied by *permissions.Store.
type Grants interface {
	OnSessionCreated(ctx context.Context, s *models.Session) error
	OnSessionPublished(ctx context.Context, s *models.Session) error
	OnRequestCreated(
		ctx context.Context,
		req *models.SessionRequest,
		hostID uuid.UUID,
	) error
}

// Notifier is the slice of the notification sender the use cases need.
// Satisfied by *notifications.Notifier.
type Notifier interface {
	SessionPublished(
		host *models.User,
		settings *models.NotificationSettings,
		sessionTitle string,
	)
	SessionRequested(
		host *models.User,
		settings *models.NotificationSettings,
		sessionTitle string,
	)
	RequestApproved(
		attendee *models.User,
		settings *models.NotificationSettings,
		sessionTitle string,
		startsAt string,
	)
	RequestRejected(
		attendee *models.User,
		settings *models.NotificationSettings,
		sessionTitle string,
		reason string,
	)
	PaymentMade(
		attendee *models.User,
		settings *models.NotificationSettings,
		sessionTitle string,
		amount int64,
		currency string,
	)
	PaymentReceived(
		host *models.User,
		settings *models.NotificationSettings,
		sessionTitle string,
		amount int64,
		currency string,
	)
	RefundRequested(
		host *models.User,
		settings *models.NotificationSettings,
		sessionTitle string,
	)
	RefundIssued(
		attendee *models.User,
		settings *models.NotificationSettings,
		sessionTitle string,
	)
}

// MeetingRooms is satisfied by *meetings.Client.
type MeetingRooms interface {
	DeleteMeeting(ctx context.Context, meetingID string) error
}

// PaymentProvider is satisfied by *payments.Client.
type PaymentProvider interface {
	CreateIntent(in payments.IntentInput) (*stripe.PaymentIntent, error)
	GetIntent(paymentIntentID string) (*stripe.PaymentIntent, error)
	Refund(paymentIntentID string) (*stripe.Refund, error)
}
