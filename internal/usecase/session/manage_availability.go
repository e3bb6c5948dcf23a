package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddAvailabilityInput struct {
	SessionID uuid.UUID
	HostID    uuid.UUID

	StartsAt time.Time
	EndsAt   time.Time

	Occurrence         string
	OccurrenceStartsAt *time.Time
	OccurrenceEndsAt   *time.Time
}

// ======================================================
// USE CASE
// ======================================================

type ManageAvailability struct {
	repo domain.Repository
}

func NewManageAvailability(repo domain.Repository) *ManageAvailability {
	return &ManageAvailability{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ManageAvailability) Add(
	ctx context.Context,
	in AddAvailabilityInput,
) (*models.SessionAvailability, error) {

	s, err := uc.repo.GetSessionByID(ctx, in.SessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if s.HostID != in.HostID {
		return nil, httperr.ErrBusiness("not_session_host")
	}

	start := in.StartsAt.UTC()
	end := in.EndsAt.UTC()

	if !start.Before(end) {
		return nil, httperr.ErrBusiness("invalid_window")
	}

	switch in.Occurrence {
	case "",
		models.OccurrenceHourly,
		models.OccurrenceDaily,
		models.OccurrenceWeekly,
		models.OccurrenceMonthly,
		models.OccurrenceYearly:
	default:
		return nil, httperr.ErrBusiness("invalid_occurrence")
	}

	if in.OccurrenceStartsAt != nil && in.OccurrenceEndsAt != nil &&
		in.OccurrenceEndsAt.Before(*in.OccurrenceStartsAt) {
		return nil, httperr.ErrBusiness("invalid_occurrence_range")
	}

	av := &models.SessionAvailability{
		SessionID:          in.SessionID,
		StartsAt:           start,
		EndsAt:             end,
		Occurrence:         in.Occurrence,
		OccurrenceStartsAt: in.OccurrenceStartsAt,
		OccurrenceEndsAt:   in.OccurrenceEndsAt,
	}

	if err := uc.repo.CreateAvailability(ctx, av); err != nil {
		return nil, err
	}

	return av, nil
}

func (uc *ManageAvailability) Remove(
	ctx context.Context,
	sessionID uuid.UUID,
	hostID uuid.UUID,
	availabilityID uuid.UUID,
) error {

	s, err := uc.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return httperr.ErrBusiness("session_not_found")
	}
	if s.HostID != hostID {
		return httperr.ErrBusiness("not_session_host")
	}

	return uc.repo.DeleteAvailability(ctx, sessionID, availabilityID)
}
