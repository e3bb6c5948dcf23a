package session

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// ListSessionRequests returns the requests made against one of the
// caller's sessions.
type ListSessionRequests struct {
	repo domain.Repository
}

func NewListSessionRequests(repo domain.Repository) *ListSessionRequests {
	return &ListSessionRequests{repo: repo}
}

func (uc *ListSessionRequests) Execute(
	ctx context.Context,
	sessionID uuid.UUID,
	hostID uuid.UUID,
) ([]models.SessionRequest, error) {

	s, err := uc.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if s.HostID != hostID {
		return nil, httperr.ErrBusiness("not_session_host")
	}

	return uc.repo.ListRequestsForSession(ctx, sessionID)
}

// ListMyRequests returns everything the attendee has requested.
type ListMyRequests struct {
	repo domain.Repository
}

func NewListMyRequests(repo domain.Repository) *ListMyRequests {
	return &ListMyRequests{repo: repo}
}

func (uc *ListMyRequests) Execute(
	ctx context.Context,
	attendeeID uuid.UUID,
) ([]models.SessionRequest, error) {
	return uc.repo.ListRequestsForAttendee(ctx, attendeeID)
}
