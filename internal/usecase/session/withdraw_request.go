package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/neuromancers/session-scheduler/internal/audit"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type WithdrawRequestInput struct {
	RequestID  uuid.UUID
	AttendeeID uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type WithdrawRequest struct {
	repo     domain.Repository
	payments PaymentProvider
	meetings MeetingRooms
	notifier Notifier
	audit    AuditTrail
}

func NewWithdrawRequest(
	repo domain.Repository,
	p PaymentProvider,
	m MeetingRooms,
	notifier Notifier,
	audit AuditTrail,
) *WithdrawRequest {
	return &WithdrawRequest{
		repo:     repo,
		payments: p,
		meetings: m,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *WithdrawRequest) Execute(
	ctx context.Context,
	in WithdrawRequestInput,
) (*models.SessionRequest, error) {

	req, err := uc.repo.GetRequestForAttendee(ctx, in.RequestID, in.AttendeeID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	wasApproved := req.Status == string(domain.StatusApproved)

	now := time.Now().UTC()
	if err := domain.Withdraw(req, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Tear down the video room of an already-scheduled session. Best
	// effort: an orphaned room expires on its own.
	// --------------------------------------------------
	if wasApproved {
		if scheduled, err := uc.repo.GetScheduledSessionByRequest(ctx, req.ID); err == nil &&
			scheduled != nil && scheduled.MeetingID != "" {
			_ = uc.meetings.DeleteMeeting(ctx, scheduled.MeetingID)
		}
	}

	// --------------------------------------------------
	// Refund captured payments. When the session requires refund
	// approval the request is only marked; the host settles it later.
	// --------------------------------------------------
	if req.StripePaymentIntentID != "" && !req.Refunded {
		if req.Session.RequireRefundApproval {
			req.RefundStatus = string(domain.StatusPending)
		} else {
			if _, err := uc.payments.Refund(req.StripePaymentIntentID); err != nil {
				return nil, err
			}
			req.Refunded = true
			req.RefundStatus = string(domain.StatusApproved)
		}
	}

	if err := uc.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	if req.Refunded {
		settings, _ := uc.repo.GetNotificationSettings(ctx, req.AttendeeID)
		uc.notifier.RefundIssued(&req.Attendee, settings, req.Session.Title)
	} else if req.RefundStatus == string(domain.StatusPending) &&
		req.StripePaymentIntentID != "" {
		hostSettings, _ := uc.repo.GetNotificationSettings(ctx, req.Session.HostID)
		uc.notifier.RefundRequested(&req.Session.Host, hostSettings, req.Session.Title)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.AttendeeID,
		Action:   "request_withdrawn",
		Entity:   "session_request",
		EntityID: &req.ID,
	})

	return req, nil
}
