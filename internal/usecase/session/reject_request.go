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

type RejectRequestInput struct {
	RequestID uuid.UUID
	HostID    uuid.UUID
	Message   string
}

// ======================================================
// USE CASE
// ======================================================

type RejectRequest struct {
	repo     domain.Repository
	notifier Notifier
	audit    AuditTrail
}

func NewRejectRequest(
	repo domain.Repository,
	notifier Notifier,
	audit AuditTrail,
) *RejectRequest {
	return &RejectRequest{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RejectRequest) Execute(
	ctx context.Context,
	in RejectRequestInput,
) (*models.SessionRequest, error) {

	req, err := uc.repo.GetRequestForHost(ctx, in.RequestID, in.HostID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	now := time.Now().UTC()
	if err := domain.Reject(req, in.Message, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	settings, _ := uc.repo.GetNotificationSettings(ctx, req.AttendeeID)
	uc.notifier.RequestRejected(
		&req.Attendee,
		settings,
		req.Session.Title,
		in.Message,
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.HostID,
		Action:   "request_rejected",
		Entity:   "session_request",
		EntityID: &req.ID,
	})

	return req, nil
}
