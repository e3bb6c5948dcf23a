package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"

	"github.com/neuromancers/session-scheduler/internal/audit"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/models"
	"github.com/neuromancers/session-scheduler/internal/payments"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory domain.Repository for use case tests.
type fakeRepo struct {
	users        map[uuid.UUID]*models.User
	settings     map[uuid.UUID]*models.NotificationSettings
	sessions     map[uuid.UUID]*models.Session
	availability []models.SessionAvailability
	requests     map[uuid.UUID]*models.SessionRequest
	scheduled    []*models.ScheduledSession
	reviews      []*models.SessionReview
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[uuid.UUID]*models.User{},
		settings: map[uuid.UUID]*models.NotificationSettings{},
		sessions: map[uuid.UUID]*models.Session{},
		requests: map[uuid.UUID]*models.SessionRequest{},
	}
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetProfile(context.Context, uuid.UUID) (*models.Profile, error) {
	return nil, errNotFound
}

func (f *fakeRepo) GetNotificationSettings(_ context.Context, userID uuid.UUID) (*models.NotificationSettings, error) {
	return f.settings[userID], nil
}

func (f *fakeRepo) GetSessionByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetPublishedSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	if s, ok := f.sessions[id]; ok && s.IsPublished {
		return s, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) SaveSession(_ context.Context, s *models.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeRepo) ListPublishedSessions(_ context.Context, _ domain.ListFilter) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.IsPublished {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAvailability(_ context.Context, sessionID uuid.UUID) ([]models.SessionAvailability, error) {
	var out []models.SessionAvailability
	for _, a := range f.availability {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAvailability(_ context.Context, av *models.SessionAvailability) error {
	if av.ID == uuid.Nil {
		av.ID = uuid.New()
	}
	f.availability = append(f.availability, *av)
	return nil
}

func (f *fakeRepo) DeleteAvailability(_ context.Context, sessionID, availabilityID uuid.UUID) error {
	kept := f.availability[:0]
	for _, a := range f.availability {
		if !(a.ID == availabilityID && a.SessionID == sessionID) {
			kept = append(kept, a)
		}
	}
	f.availability = kept
	return nil
}

func (f *fakeRepo) CreateRequest(_ context.Context, req *models.SessionRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRepo) HasOverlappingApproved(
	_ context.Context,
	sessionID uuid.UUID,
	attendeeID uuid.UUID,
	start time.Time,
	end time.Time,
) (bool, error) {
	for _, r := range f.requests {
		if r.SessionID == sessionID && r.AttendeeID == attendeeID &&
			r.Status == "approved" &&
			r.StartsAt.Before(end) && r.EndsAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListApprovedRequestsBetween(
	_ context.Context,
	sessionID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.SessionRequest, error) {
	var out []models.SessionRequest
	for _, r := range f.requests {
		if r.SessionID == sessionID && r.Status == "approved" &&
			r.StartsAt.Before(end) && r.EndsAt.After(start) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetRequestByID(_ context.Context, id uuid.UUID) (*models.SessionRequest, error) {
	if r, ok := f.requests[id]; ok {
		return f.hydrate(r), nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetRequestForHost(_ context.Context, requestID, hostID uuid.UUID) (*models.SessionRequest, error) {
	r, ok := f.requests[requestID]
	if !ok {
		return nil, errNotFound
	}
	s, ok := f.sessions[r.SessionID]
	if !ok || s.HostID != hostID {
		return nil, errNotFound
	}
	return f.hydrate(r), nil
}

func (f *fakeRepo) GetRequestForAttendee(_ context.Context, requestID, attendeeID uuid.UUID) (*models.SessionRequest, error) {
	r, ok := f.requests[requestID]
	if !ok || r.AttendeeID != attendeeID {
		return nil, errNotFound
	}
	return f.hydrate(r), nil
}

// hydrate fills the associations a gorm Preload would.
func (f *fakeRepo) hydrate(r *models.SessionRequest) *models.SessionRequest {
	if s, ok := f.sessions[r.SessionID]; ok {
		r.Session = *s
		if h, ok := f.users[s.HostID]; ok {
			r.Session.Host = *h
		}
	}
	if a, ok := f.users[r.AttendeeID]; ok {
		r.Attendee = *a
	}
	return r
}

func (f *fakeRepo) UpdateRequest(_ context.Context, req *models.SessionRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRepo) ListRequestsForSession(_ context.Context, sessionID uuid.UUID) ([]models.SessionRequest, error) {
	var out []models.SessionRequest
	for _, r := range f.requests {
		if r.SessionID == sessionID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRequestsForAttendee(_ context.Context, attendeeID uuid.UUID) ([]models.SessionRequest, error) {
	var out []models.SessionRequest
	for _, r := range f.requests {
		if r.AttendeeID == attendeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateScheduledSession(_ context.Context, s *models.ScheduledSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.scheduled = append(f.scheduled, s)
	return nil
}

func (f *fakeRepo) GetScheduledSessionByRequest(_ context.Context, requestID uuid.UUID) (*models.ScheduledSession, error) {
	for _, s := range f.scheduled {
		if s.RequestID == requestID {
			return s, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) CreateReview(_ context.Context, review *models.SessionReview) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeRepo) ListReviewsForSession(_ context.Context, sessionID uuid.UUID) ([]models.SessionReview, error) {
	var out []models.SessionReview
	for _, r := range f.reviews {
		if r.SessionID == sessionID {
			out = append(out, *r)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Collaborator fakes
// --------------------------------------------------

type fakeAudit struct {
	events []audit.Event
}

func (f *fakeAudit) Dispatch(ev audit.Event) {
	f.events = append(f.events, ev)
}

type fakeGrants struct {
	sessionCreated   int
	sessionPublished int
	requestCreated   int
}

func (f *fakeGrants) OnSessionCreated(context.Context, *models.Session) error {
	f.sessionCreated++
	return nil
}

func (f *fakeGrants) OnSessionPublished(context.Context, *models.Session) error {
	f.sessionPublished++
	return nil
}

func (f *fakeGrants) OnRequestCreated(context.Context, *models.SessionRequest, uuid.UUID) error {
	f.requestCreated++
	return nil
}

type fakeNotifier struct {
	published        []string
	requested        []string
	approved         []string
	rejected         []string
	refunded         []string
	paymentsMade     []int64
	paymentsReceived []int64
	refundRequested  []string
}

func (f *fakeNotifier) SessionPublished(_ *models.User, _ *models.NotificationSettings, title string) {
	f.published = append(f.published, title)
}

func (f *fakeNotifier) SessionRequested(_ *models.User, _ *models.NotificationSettings, title string) {
	f.requested = append(f.requested, title)
}

func (f *fakeNotifier) RequestApproved(_ *models.User, _ *models.NotificationSettings, title, _ string) {
	f.approved = append(f.approved, title)
}

func (f *fakeNotifier) RequestRejected(_ *models.User, _ *models.NotificationSettings, title, _ string) {
	f.rejected = append(f.rejected, title)
}

func (f *fakeNotifier) PaymentMade(_ *models.User, _ *models.NotificationSettings, _ string, amount int64, _ string) {
	f.paymentsMade = append(f.paymentsMade, amount)
}

func (f *fakeNotifier) PaymentReceived(_ *models.User, _ *models.NotificationSettings, _ string, amount int64, _ string) {
	f.paymentsReceived = append(f.paymentsReceived, amount)
}

func (f *fakeNotifier) RefundRequested(_ *models.User, _ *models.NotificationSettings, title string) {
	f.refundRequested = append(f.refundRequested, title)
}

func (f *fakeNotifier) RefundIssued(_ *models.User, _ *models.NotificationSettings, title string) {
	f.refunded = append(f.refunded, title)
}

type fakePayments struct {
	intents []payments.IntentInput
	refunds []string
	fail    bool
}

func (f *fakePayments) CreateIntent(in payments.IntentInput) (*stripe.PaymentIntent, error) {
	if f.fail {
		return nil, errors.New("stripe unavailable")
	}
	f.intents = append(f.intents, in)
	return &stripe.PaymentIntent{ID: "pi_test_1", Amount: in.Amount}, nil
}

func (f *fakePayments) GetIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	if f.fail {
		return nil, errors.New("stripe unavailable")
	}
	return &stripe.PaymentIntent{
		ID:     paymentIntentID,
		Status: stripe.PaymentIntentStatusSucceeded,
	}, nil
}

func (f *fakePayments) Refund(paymentIntentID string) (*stripe.Refund, error) {
	if f.fail {
		return nil, errors.New("stripe unavailable")
	}
	f.refunds = append(f.refunds, paymentIntentID)
	return &stripe.Refund{ID: "re_test_1"}, nil
}

type fakeMeetings struct {
	deleted []string
}

func (f *fakeMeetings) DeleteMeeting(_ context.Context, meetingID string) error {
	f.deleted = append(f.deleted, meetingID)
	return nil
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := f.store[key]
	return v, ok
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) {
	f.store[key] = value
}
