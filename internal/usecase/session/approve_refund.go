package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/neuromancers/session-scheduler/internal/audit"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ApproveRefundInput struct {
	RequestID uuid.UUID
	HostID    uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

// ApproveRefund settles a refund that was left pending because the
// session requires refund approval.
type ApproveRefund struct {
	repo     domain.Repository
	payments PaymentProvider
	notifier Notifier
	audit    AuditTrail
}

func NewApproveRefund(
	repo domain.Repository,
	p PaymentProvider,
	notifier Notifier,
	audit AuditTrail,
) *ApproveRefund {
	return &ApproveRefund{
		repo:     repo,
		payments: p,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ApproveRefund) Execute(
	ctx context.Context,
	in ApproveRefundInput,
) (*models.SessionRequest, error) {

	req, err := uc.repo.GetRequestForHost(ctx, in.RequestID, in.HostID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	if req.Refunded || req.StripePaymentIntentID == "" {
		return nil, httperr.ErrBusiness("nothing_to_refund")
	}
	if req.Status != string(domain.StatusWithdrawn) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	if _, err := uc.payments.Refund(req.StripePaymentIntentID); err != nil {
		return nil, err
	}

	req.Refunded = true
	req.RefundStatus = string(domain.StatusApproved)

	if err := uc.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	settings, _ := uc.repo.GetNotificationSettings(ctx, req.AttendeeID)
	uc.notifier.RefundIssued(&req.Attendee, settings, req.Session.Title)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.HostID,
		Action:   "refund_approved",
		Entity:   "session_request",
		EntityID: &req.ID,
	})

	return req, nil
}
