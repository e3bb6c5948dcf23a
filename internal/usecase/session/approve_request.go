package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/neuromancers/session-scheduler/internal/audit"
	"github.com/neuromancers/session-scheduler/internal/domain/schedule"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/models"
	"github.com/neuromancers/session-scheduler/internal/payments"
)

// ======================================================
// INPUT
// ======================================================

type ApproveRequestInput struct {
	RequestID uuid.UUID
	HostID    uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type ApproveRequest struct {
	repo     domain.Repository
	payments PaymentProvider
	notifier Notifier
	audit    AuditTrail
}

func NewApproveRequest(
	repo domain.Repository,
	p PaymentProvider,
	notifier Notifier,
	audit AuditTrail,
) *ApproveRequest {
	return &ApproveRequest{
		repo:     repo,
		payments: p,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ApproveRequest) Execute(
	ctx context.Context,
	in ApproveRequestInput,
) (*models.SessionRequest, error) {

	// --------------------------------------------------
	// 1. Request must belong to one of the caller's sessions
	// --------------------------------------------------
	req, err := uc.repo.GetRequestForHost(ctx, in.RequestID, in.HostID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	// --------------------------------------------------
	// 2. Transition (pending only)
	// --------------------------------------------------
	now := time.Now().UTC()
	if err := domain.Approve(req, now); err != nil {
		return nil, err
	}
	if req.PayConcessionaryPrice {
		req.ConcessionaryStatus = string(domain.StatusApproved)
	}

	// --------------------------------------------------
	// 3. Collect payment when the session charges up front
	// --------------------------------------------------
	charged := false
	amount := domain.Amount(
		&req.Session, req.StartsAt, req.EndsAt,
		req.PayConcessionaryPrice,
	)
	if amount > 0 && !req.Session.AccessBeforePayment {
		charged = true
		intent, err := uc.payments.CreateIntent(payments.IntentInput{
			Amount:      amount,
			Currency:    req.Session.Currency,
			RequestID:   req.ID,
			SessionID:   req.SessionID,
			AttendeeID:  req.AttendeeID,
			HostAccount: req.Session.Host.StripeAccountID,
		})
		if err != nil {
			return nil, err
		}
		req.StripePaymentIntentID = intent.ID
	}

	if err := uc.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Scheduled session
	// --------------------------------------------------
	scheduled := &models.ScheduledSession{RequestID: req.ID}
	if err := uc.repo.CreateScheduledSession(ctx, scheduled); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Notify both sides
	// --------------------------------------------------
	settings, _ := uc.repo.GetNotificationSettings(ctx, req.AttendeeID)
	uc.notifier.RequestApproved(
		&req.Attendee,
		settings,
		req.Session.Title,
		schedule.Timestamp(req.StartsAt),
	)

	if charged {
		uc.notifier.PaymentMade(
			&req.Attendee, settings,
			req.Session.Title, amount, req.Session.Currency,
		)
		hostSettings, _ := uc.repo.GetNotificationSettings(ctx, in.HostID)
		uc.notifier.PaymentReceived(
			&req.Session.Host, hostSettings,
			req.Session.Title, amount, req.Session.Currency,
		)
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.HostID,
		Action:   "request_approved",
		Entity:   "session_request",
		EntityID: &req.ID,
	})

	return req, nil
}
