package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/neuromancers/session-scheduler/internal/models"
)

// ListFilter carries the decoded filter/sort parameters for session
// listings. Values come from the filterstate URL contract.
type ListFilter struct {
	Languages []string
	Filters   map[string][]string
	Sort      string
	FreeOnly  bool
}

type Repository interface {
	// -------- User / profile --------
	GetUserByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)

	GetProfile(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.Profile, error)

	GetNotificationSettings(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.NotificationSettings, error)

	// -------- Session --------
	GetSessionByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Session, error)

	GetPublishedSession(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Session, error)

	SaveSession(
		ctx context.Context,
		s *models.Session,
	) error

	ListPublishedSessions(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Session, error)

	// -------- Availability --------
	ListAvailability(
		ctx context.Context,
		sessionID uuid.UUID,
	) ([]models.SessionAvailability, error)

	CreateAvailability(
		ctx context.Context,
		av *models.SessionAvailability,
	) error

	DeleteAvailability(
		ctx context.Context,
		sessionID uuid.UUID,
		availabilityID uuid.UUID,
	) error

	// -------- Request (create / conflict) --------
	CreateRequest(
		ctx context.Context,
		req *models.SessionRequest,
	) error

	HasOverlappingApproved(
		ctx context.Context,
		sessionID uuid.UUID,
		attendeeID uuid.UUID,
		start time.Time,
		end time.Time,
	) (bool, error)

	ListApprovedRequestsBetween(
		ctx context.Context,
		sessionID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.SessionRequest, error)

	// -------- Request (state change) --------
	GetRequestByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.SessionRequest, error)

	GetRequestForHost(
		ctx context.Context,
		requestID uuid.UUID,
		hostID uuid.UUID,
	) (*models.SessionRequest, error)

	GetRequestForAttendee(
		ctx context.Context,
		requestID uuid.UUID,
		attendeeID uuid.UUID,
	) (*models.SessionRequest, error)

	UpdateRequest(
		ctx context.Context,
		req *models.SessionRequest,
	) error

	ListRequestsForSession(
		ctx context.Context,
		sessionID uuid.UUID,
	) ([]models.SessionRequest, error)

	ListRequestsForAttendee(
		ctx context.Context,
		attendeeID uuid.UUID,
	) ([]models.SessionRequest, error)

	// -------- Scheduled session --------
	CreateScheduledSession(
		ctx context.Context,
		s *models.ScheduledSession,
	) error

	GetScheduledSessionByRequest(
		ctx context.Context,
		requestID uuid.UUID,
	) (*models.ScheduledSession, error)

	// -------- Review --------
	CreateReview(
		ctx context.Context,
		review *models.SessionReview,
	) error

	ListReviewsForSession(
		ctx context.Context,
		sessionID uuid.UUID,
	) ([]models.SessionReview, error)
}
