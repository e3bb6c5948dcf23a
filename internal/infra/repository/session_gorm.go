package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// --------------------------------------------------
// User / profile
// --------------------------------------------------

func (r *SessionGormRepository) GetUserByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *SessionGormRepository) GetProfile(
	ctx context.Context,
	userID uuid.UUID,
) (*models.Profile, error) {

	var profile models.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *SessionGormRepository) GetNotificationSettings(
	ctx context.Context,
	userID uuid.UUID,
) (*models.NotificationSettings, error) {

	var settings models.NotificationSettings
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings).Error

	if err != nil {
		// Missing settings mean defaults, not failure.
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// --------------------------------------------------
// Session
// --------------------------------------------------

func (r *SessionGormRepository) GetSessionByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Preload("Host").
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) GetPublishedSession(
	ctx context.Context,
	id uuid.UUID,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Preload("Host").
		Where("id = ? AND is_published = true", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) SaveSession(
	ctx context.Context,
	s *models.Session,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SessionGormRepository) ListPublishedSessions(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Session, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Preload("Host").
		Where("is_published = true")

	for _, lang := range filter.Languages {
		q = q.Where(
			"',' || languages || ',' LIKE ?",
			"%,"+lang+",%",
		)
	}

	if filter.FreeOnly {
		q = q.Where(
			"price = 0 AND (per_hour_price IS NULL OR per_hour_price = 0)",
		)
	}

	// Selections inside one group OR together, groups AND together. The
	// stored shape is { group: { items: { key: true } } }.
	for group, keys := range filter.Filters {
		if len(keys) == 0 {
			continue
		}
		var conds []string
		var args []any
		for _, key := range keys {
			conds = append(conds, "filters -> ? -> 'items' ->> ? = 'true'")
			args = append(args, group, key)
		}
		q = q.Where(
			fmt.Sprintf("(%s)", strings.Join(conds, " OR ")),
			args...,
		)
	}

	switch filter.Sort {
	case "price_asc":
		q = q.Order("price ASC")
	case "price_desc":
		q = q.Order("price DESC")
	case "oldest":
		q = q.Order("created_at ASC")
	default:
		q = q.Order("created_at DESC")
	}

	var sessions []models.Session
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *SessionGormRepository) ListAvailability(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]models.SessionAvailability, error) {

	var windows []models.SessionAvailability
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("starts_at ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *SessionGormRepository) CreateAvailability(
	ctx context.Context,
	av *models.SessionAvailability,
) error {
	return r.db.WithContext(ctx).Create(av).Error
}

func (r *SessionGormRepository) DeleteAvailability(
	ctx context.Context,
	sessionID uuid.UUID,
	availabilityID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", availabilityID, sessionID).
		Delete(&models.SessionAvailability{}).Error
}

// --------------------------------------------------
// Request (create / conflict)
// --------------------------------------------------

func (r *SessionGormRepository) CreateRequest(
	ctx context.Context,
	req *models.SessionRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *SessionGormRepository) HasOverlappingApproved(
	ctx context.Context,
	sessionID uuid.UUID,
	attendeeID uuid.UUID,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SessionRequest{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"session_id = ? AND attendee_id = ? AND status = 'approved' AND starts_at < ? AND ends_at > ?",
			sessionID,
			attendeeID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SessionGormRepository) ListApprovedRequestsBetween(
	ctx context.Context,
	sessionID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.SessionRequest, error) {

	var reqs []models.SessionRequest
	if err := r.db.WithContext(ctx).
		Select("starts_at", "ends_at").
		Where(
			"session_id = ? AND status = 'approved' AND starts_at < ? AND ends_at > ?",
			sessionID, end, start,
		).
		Order("starts_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}

	return reqs, nil
}

// --------------------------------------------------
// Request (state change)
// --------------------------------------------------

func (r *SessionGormRepository) GetRequestByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.SessionRequest, error) {

	var req models.SessionRequest
	if err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Host").
		Preload("Attendee").
		Where("id = ?", id).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SessionGormRepository) GetRequestForHost(
	ctx context.Context,
	requestID uuid.UUID,
	hostID uuid.UUID,
) (*models.SessionRequest, error) {

	var req models.SessionRequest
	if err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Host").
		Preload("Attendee").
		Joins("JOIN sessions ON sessions.id = session_requests.session_id").
		Where(
			"session_requests.id = ? AND sessions.host_id = ?",
			requestID, hostID,
		).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SessionGormRepository) GetRequestForAttendee(
	ctx context.Context,
	requestID uuid.UUID,
	attendeeID uuid.UUID,
) (*models.SessionRequest, error) {

	var req models.SessionRequest
	if err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Host").
		Preload("Attendee").
		Where("id = ? AND attendee_id = ?", requestID, attendeeID).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SessionGormRepository) UpdateRequest(
	ctx context.Context,
	req *models.SessionRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *SessionGormRepository) ListRequestsForSession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]models.SessionRequest, error) {

	var reqs []models.SessionRequest
	if err := r.db.WithContext(ctx).
		Preload("Attendee").
		Where("session_id = ?", sessionID).
		Order("starts_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *SessionGormRepository) ListRequestsForAttendee(
	ctx context.Context,
	attendeeID uuid.UUID,
) ([]models.SessionRequest, error) {

	var reqs []models.SessionRequest
	if err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Host").
		Where("attendee_id = ?", attendeeID).
		Order("starts_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// --------------------------------------------------
// Scheduled session
// --------------------------------------------------

func (r *SessionGormRepository) CreateScheduledSession(
	ctx context.Context,
	s *models.ScheduledSession,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionGormRepository) GetScheduledSessionByRequest(
	ctx context.Context,
	requestID uuid.UUID,
) (*models.ScheduledSession, error) {

	var s models.ScheduledSession
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *SessionGormRepository) CreateReview(
	ctx context.Context,
	review *models.SessionReview,
) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *SessionGormRepository) ListReviewsForSession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]models.SessionReview, error) {

	var reviews []models.SessionReview
	if err := r.db.WithContext(ctx).
		Preload("Attendee").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Compile-time check
var _ domain.Repository = (*SessionGormRepository)(nil)
