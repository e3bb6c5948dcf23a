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

type PublishSessionInput struct {
	SessionID uuid.UUID
	HostID    uuid.UUID
	Publish   bool
}

// ======================================================
// USE CASE
// ======================================================

type PublishSession struct {
	repo     domain.Repository
	grants   Grants
	notifier Notifier
	audit    AuditTrail
}

func NewPublishSession(
	repo domain.Repository,
	grants Grants,
	notifier Notifier,
	audit AuditTrail,
) *PublishSession {
	return &PublishSession{
		repo:     repo,
		grants:   grants,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PublishSession) Execute(
	ctx context.Context,
	in PublishSessionInput,
) (*models.Session, error) {

	// --------------------------------------------------
	// 1. Session must belong to the caller
	// --------------------------------------------------
	s, err := uc.repo.GetSessionByID(ctx, in.SessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if s.HostID != in.HostID {
		return nil, httperr.ErrBusiness("not_session_host")
	}

	// --------------------------------------------------
	// 2. Publish requirements
	// --------------------------------------------------
	if in.Publish {
		if len(s.LanguageList()) == 0 {
			return nil, httperr.ErrBusiness("languages_required")
		}
		if len(s.DurationList()) == 0 {
			return nil, httperr.ErrBusiness("durations_required")
		}

		free := s.Price == 0 && (s.PerHourPrice == nil || *s.PerHourPrice == 0)
		if free && !s.AccessBeforePayment {
			return nil, httperr.ErrBusiness("free_session_requires_access")
		}

		// A paid session that blocks access before payment needs the
		// host onboarded with the payment provider.
		if !free && !s.AccessBeforePayment {
			host, err := uc.repo.GetUserByID(ctx, s.HostID)
			if err != nil {
				return nil, err
			}
			if host.StripeAccountID == "" {
				return nil, httperr.ErrBusiness("host_not_onboarded")
			}
		}
	}

	if s.IsPublished == in.Publish {
		return s, nil
	}

	// --------------------------------------------------
	// 3. Flip + grants
	// --------------------------------------------------
	s.IsPublished = in.Publish
	if err := uc.repo.SaveSession(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.grants.OnSessionPublished(ctx, s); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Notify + audit
	// --------------------------------------------------
	if in.Publish {
		if host, err := uc.repo.GetUserByID(ctx, s.HostID); err == nil {
			settings, _ := uc.repo.GetNotificationSettings(ctx, s.HostID)
			uc.notifier.SessionPublished(host, settings, s.Title)
		}
	}

	action := "session_published"
	if !in.Publish {
		action = "session_unpublished"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.HostID,
		Action:   action,
		Entity:   "session",
		EntityID: &s.ID,
	})

	return s, nil
}
