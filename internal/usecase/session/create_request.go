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

const minRequestDuration = 5 * time.Minute

// timestampLayout matches the booking form's hidden field format.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ======================================================
// INPUT
// ======================================================

type CreateRequestInput struct {
	SessionID  uuid.UUID
	AttendeeID uuid.UUID

	// ISO-8601 instants exactly as the booking form submits them.
	StartsAt string
	EndsAt   string

	Language           string
	AccessibilityNeeds string

	PayConcessionaryPrice bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateRequest struct {
	repo     domain.Repository
	grants   Grants
	notifier Notifier
	audit    AuditTrail
}

func NewCreateRequest(
	repo domain.Repository,
	grants Grants,
	notifier Notifier,
	audit AuditTrail,
) *CreateRequest {
	return &CreateRequest{
		repo:     repo,
		grants:   grants,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.SessionRequest, error) {

	// --------------------------------------------------
	// 1. Session must be published
	// --------------------------------------------------
	s, err := uc.repo.GetPublishedSession(ctx, in.SessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	// --------------------------------------------------
	// 2. Parse + validate the requested interval
	// --------------------------------------------------
	start, err := time.Parse(timestampLayout, in.StartsAt)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start")
	}
	end, err := time.Parse(timestampLayout, in.EndsAt)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_end")
	}
	start = start.UTC()
	end = end.UTC()

	if end.Sub(start) < minRequestDuration {
		return nil, httperr.ErrBusiness("session_too_short")
	}
	if start.Before(time.Now().UTC()) {
		return nil, httperr.ErrBusiness("start_in_past")
	}

	// --------------------------------------------------
	// 3. Interval must sit inside an availability window
	// --------------------------------------------------
	within, err := uc.withinAvailability(ctx, s, start, end)
	if err != nil {
		return nil, err
	}
	if !within {
		return nil, httperr.ErrBusiness("outside_availability")
	}

	// --------------------------------------------------
	// 4. No overlapping approved request for this attendee
	// --------------------------------------------------
	overlap, err := uc.repo.HasOverlappingApproved(
		ctx, in.SessionID, in.AttendeeID, start, end,
	)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, httperr.ErrBusiness("overlapping_request")
	}

	// --------------------------------------------------
	// 5. Status (auto-approve when the session allows it)
	// --------------------------------------------------
	requireApproval := s.RequireRequestApproval
	if in.PayConcessionaryPrice && s.RequireConcessionaryApproval {
		requireApproval = true
	}
	status := domain.InitialStatus(requireApproval)

	now := time.Now().UTC()
	req := &models.SessionRequest{
		SessionID:  in.SessionID,
		AttendeeID: in.AttendeeID,
		StartsAt:   start,
		EndsAt:     end,
		Status:     string(status),

		Language:           in.Language,
		AccessibilityNeeds: in.AccessibilityNeeds,

		PayConcessionaryPrice: in.PayConcessionaryPrice,
	}
	if status == domain.StatusApproved {
		req.ApprovedAt = &now
	}

	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Auto-approved requests get their scheduled session now
	// --------------------------------------------------
	if status == domain.StatusApproved {
		scheduled := &models.ScheduledSession{RequestID: req.ID}
		if err := uc.repo.CreateScheduledSession(ctx, scheduled); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 7. Object permissions
	// --------------------------------------------------
	if err := uc.grants.OnRequestCreated(ctx, req, s.HostID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Notify host
	// --------------------------------------------------
	host, err := uc.repo.GetUserByID(ctx, s.HostID)
	if err == nil {
		settings, _ := uc.repo.GetNotificationSettings(ctx, s.HostID)
		uc.notifier.SessionRequested(host, settings, s.Title)
	}

	// --------------------------------------------------
	// 9. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.AttendeeID,
		Action:   "request_created",
		Entity:   "session_request",
		EntityID: &req.ID,
	})

	return req, nil
}

// withinAvailability reports whether [start, end) fits inside one of the
// session's windows projected onto the request's day.
func (uc *CreateRequest) withinAvailability(
	ctx context.Context,
	s *models.Session,
	start time.Time,
	end time.Time,
) (bool, error) {

	records, err := uc.repo.ListAvailability(ctx, s.ID)
	if err != nil {
		return false, err
	}

	durations := s.DurationList()
	for i := range records {
		for _, w := range domain.ProjectOnDay(&records[i], start, durations) {
			if !start.Before(w.OpensAt()) && !end.After(w.ClosesAt()) {
				return true, nil
			}
		}
	}
	return false, nil
}
