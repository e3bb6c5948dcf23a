package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// fixture: a published session open 09:00-17:00 UTC on 2030-03-10,
// bookable in 20/40/60 minute blocks.
func seedBookableSession(repo *fakeRepo) (*models.Session, *models.User, *models.User) {
	host := &models.User{ID: uuid.New(), Username: "peer", Email: "peer@x.test", Role: models.RolePeer}
	attendee := &models.User{ID: uuid.New(), Username: "seeker", Email: "seeker@x.test", Role: models.RoleSeeker}
	repo.users[host.ID] = host
	repo.users[attendee.ID] = attendee

	s := &models.Session{
		ID:                     uuid.New(),
		HostID:                 host.ID,
		Title:                  "Listening session",
		Languages:              "English",
		Durations:              "20,40,60",
		Currency:               "GBP",
		AccessBeforePayment:    true,
		RequireRequestApproval: true,
		IsPublished:            true,
	}
	repo.sessions[s.ID] = s

	repo.availability = append(repo.availability, models.SessionAvailability{
		ID:        uuid.New(),
		SessionID: s.ID,
		StartsAt:  time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2030, 3, 10, 17, 0, 0, 0, time.UTC),
	})

	return s, host, attendee
}

func businessCode(t *testing.T, err error) string {
	t.Helper()
	var bErr httperr.BusinessError
	require.ErrorAs(t, err, &bErr)
	return bErr.Code
}

func TestCreateRequestHappyPath(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)

	notifier := &fakeNotifier{}
	grants := &fakeGrants{}
	trail := &fakeAudit{}
	uc := NewCreateRequest(repo, grants, notifier, trail)

	req, err := uc.Execute(context.Background(), CreateRequestInput{
		SessionID:  s.ID,
		AttendeeID: attendee.ID,
		StartsAt:   "2030-03-10T09:20:00.000+00:00",
		EndsAt:     "2030-03-10T09:40:00.000+00:00",
		Language:   "English",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), req.Status)
	assert.Equal(t, time.Date(2030, 3, 10, 9, 20, 0, 0, time.UTC), req.StartsAt)
	assert.Equal(t, 1, grants.requestCreated)
	assert.Equal(t, []string{"Listening session"}, notifier.requested)
	assert.Len(t, trail.events, 1)
	assert.Empty(t, repo.scheduled, "pending requests are not scheduled yet")
}

func TestCreateRequestAutoApproval(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)
	s.RequireRequestApproval = false

	uc := NewCreateRequest(repo, &fakeGrants{}, &fakeNotifier{}, &fakeAudit{})

	req, err := uc.Execute(context.Background(), CreateRequestInput{
		SessionID:  s.ID,
		AttendeeID: attendee.ID,
		StartsAt:   "2030-03-10T10:00:00.000+00:00",
		EndsAt:     "2030-03-10T11:00:00.000+00:00",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), req.Status)
	require.NotNil(t, req.ApprovedAt)
	require.Len(t, repo.scheduled, 1)
	assert.Equal(t, req.ID, repo.scheduled[0].RequestID)
}

func TestCreateRequestConcessionaryStillNeedsApproval(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)
	s.RequireRequestApproval = false
	s.RequireConcessionaryApproval = true

	uc := NewCreateRequest(repo, &fakeGrants{}, &fakeNotifier{}, &fakeAudit{})

	req, err := uc.Execute(context.Background(), CreateRequestInput{
		SessionID:             s.ID,
		AttendeeID:            attendee.ID,
		StartsAt:              "2030-03-10T10:00:00.000+00:00",
		EndsAt:                "2030-03-10T10:20:00.000+00:00",
		PayConcessionaryPrice: true,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), req.Status)
}

func TestCreateRequestValidation(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)

	uc := NewCreateRequest(repo, &fakeGrants{}, &fakeNotifier{}, &fakeAudit{})

	tests := []struct {
		name     string
		startsAt string
		endsAt   string
		wantCode string
	}{
		{
			name:     "malformed start",
			startsAt: "2030-03-10 09:20",
			endsAt:   "2030-03-10T09:40:00.000+00:00",
			wantCode: "invalid_start",
		},
		{
			name:     "below five minutes",
			startsAt: "2030-03-10T09:20:00.000+00:00",
			endsAt:   "2030-03-10T09:23:00.000+00:00",
			wantCode: "session_too_short",
		},
		{
			name:     "outside availability window",
			startsAt: "2030-03-10T18:00:00.000+00:00",
			endsAt:   "2030-03-10T18:20:00.000+00:00",
			wantCode: "outside_availability",
		},
		{
			name:     "wrong day entirely",
			startsAt: "2030-03-11T09:00:00.000+00:00",
			endsAt:   "2030-03-11T09:20:00.000+00:00",
			wantCode: "outside_availability",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), CreateRequestInput{
				SessionID:  s.ID,
				AttendeeID: attendee.ID,
				StartsAt:   tt.startsAt,
				EndsAt:     tt.endsAt,
			})
			assert.Equal(t, tt.wantCode, businessCode(t, err))
		})
	}
}

func TestCreateRequestRejectsOverlapWithApproved(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)

	existing := &models.SessionRequest{
		ID:         uuid.New(),
		SessionID:  s.ID,
		AttendeeID: attendee.ID,
		StartsAt:   time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2030, 3, 10, 10, 0, 0, 0, time.UTC),
		Status:     string(domain.StatusApproved),
	}
	repo.requests[existing.ID] = existing

	uc := NewCreateRequest(repo, &fakeGrants{}, &fakeNotifier{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), CreateRequestInput{
		SessionID:  s.ID,
		AttendeeID: attendee.ID,
		StartsAt:   "2030-03-10T09:40:00.000+00:00",
		EndsAt:     "2030-03-10T10:20:00.000+00:00",
	})
	assert.Equal(t, "overlapping_request", businessCode(t, err))
}

func TestCreateRequestUnpublishedSession(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)
	s.IsPublished = false

	uc := NewCreateRequest(repo, &fakeGrants{}, &fakeNotifier{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), CreateRequestInput{
		SessionID:  s.ID,
		AttendeeID: attendee.ID,
		StartsAt:   "2030-03-10T09:20:00.000+00:00",
		EndsAt:     "2030-03-10T09:40:00.000+00:00",
	})
	assert.Equal(t, "session_not_found", businessCode(t, err))
}
