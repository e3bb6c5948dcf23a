package permissions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neuromancers/session-scheduler/internal/models"
)

// Object-level permission names.
const (
	PermViewSession     = "view_session"
	PermChangeSession   = "change_session"
	PermDeleteSession   = "delete_session"
	PermRequestSession  = "request_session"
	PermViewRequest     = "view_request"
	PermApproveRequest  = "approve_request"
	PermWithdrawRequest = "withdraw_request"
)

// Entity type names used in grants.
const (
	EntitySession = "session"
	EntityRequest = "session_request"
)

// Store writes and checks object-level grants. Grants are created when
// entities are, mirroring who may act on them later.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) grantUser(
	ctx context.Context,
	userID uuid.UUID,
	perm string,
	entityType string,
	entityID uuid.UUID,
) error {
	g := models.PermissionGrant{
		Permission: perm,
		UserID:     &userID,
		EntityType: entityType,
		EntityID:   entityID,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&g).Error
}

func (s *Store) grantRole(
	ctx context.Context,
	role string,
	perm string,
	entityType string,
	entityID uuid.UUID,
) error {
	g := models.PermissionGrant{
		Permission: perm,
		Role:       role,
		EntityType: entityType,
		EntityID:   entityID,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&g).Error
}

// OnSessionCreated gives the host full control over their session.
func (s *Store) OnSessionCreated(
	ctx context.Context,
	session *models.Session,
) error {

	for _, perm := range []string{
		PermViewSession,
		PermChangeSession,
		PermDeleteSession,
	} {
		if err := s.grantUser(
			ctx, session.HostID, perm, EntitySession, session.ID,
		); err != nil {
			return err
		}
	}
	return nil
}

// OnSessionPublished opens the session up to support seekers: they may
// view it and request slots. Unpublishing removes those grants again.
func (s *Store) OnSessionPublished(
	ctx context.Context,
	session *models.Session,
) error {

	if !session.IsPublished {
		return s.db.WithContext(ctx).
			Where(
				"role = ? AND entity_type = ? AND entity_id = ?",
				models.RoleSeeker, EntitySession, session.ID,
			).
			Delete(&models.PermissionGrant{}).Error
	}

	for _, perm := range []string{PermViewSession, PermRequestSession} {
		if err := s.grantRole(
			ctx, models.RoleSeeker, perm, EntitySession, session.ID,
		); err != nil {
			return err
		}
	}
	return nil
}

// OnRequestCreated lets the attendee see and withdraw their request, and
// the host see and decide it.
func (s *Store) OnRequestCreated(
	ctx context.Context,
	req *models.SessionRequest,
	hostID uuid.UUID,
) error {

	for _, perm := range []string{PermViewRequest, PermWithdrawRequest} {
		if err := s.grantUser(
			ctx, req.AttendeeID, perm, EntityRequest, req.ID,
		); err != nil {
			return err
		}
	}

	for _, perm := range []string{PermViewRequest, PermApproveRequest} {
		if err := s.grantUser(
			ctx, hostID, perm, EntityRequest, req.ID,
		); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether the user holds a grant, directly or via role.
func (s *Store) Has(
	ctx context.Context,
	userID uuid.UUID,
	role string,
	perm string,
	entityType string,
	entityID uuid.UUID,
) (bool, error) {

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.PermissionGrant{}).
		Where(
			"permission = ? AND entity_type = ? AND entity_id = ? AND (user_id = ? OR role = ?)",
			perm, entityType, entityID, userID, role,
		).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
