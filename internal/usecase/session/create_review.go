package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReviewInput struct {
	SessionID  uuid.UUID
	AttendeeID uuid.UUID
	Rating     int
	Content    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReview struct {
	repo domain.Repository
}

func NewCreateReview(repo domain.Repository) *CreateReview {
	return &CreateReview{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*models.SessionReview, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness("invalid_rating")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, httperr.ErrBusiness("content_required")
	}

	if _, err := uc.repo.GetPublishedSession(ctx, in.SessionID); err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	// Reviews are only open to attendees with a past approved session.
	requests, err := uc.repo.ListRequestsForAttendee(ctx, in.AttendeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	attended := false
	for _, r := range requests {
		if r.SessionID == in.SessionID &&
			r.Status == string(domain.StatusApproved) &&
			r.EndsAt.Before(now) {
			attended = true
			break
		}
	}
	if !attended {
		return nil, httperr.ErrBusiness("not_attended")
	}

	review := &models.SessionReview{
		SessionID:  in.SessionID,
		AttendeeID: in.AttendeeID,
		Rating:     in.Rating,
		Content:    in.Content,
	}

	if err := uc.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}
