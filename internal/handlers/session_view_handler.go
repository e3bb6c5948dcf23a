package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/httpresp"
	"github.com/neuromancers/session-scheduler/internal/middleware"
	"github.com/neuromancers/session-scheduler/internal/models"
	"github.com/neuromancers/session-scheduler/internal/permissions"
)

// SessionViewHandler serves sessions to authenticated callers. Unlike
// the public catalog it also returns unpublished drafts, gated on
// object-level grants.
type SessionViewHandler struct {
	db     *gorm.DB
	grants *permissions.Store
}

func NewSessionViewHandler(db *gorm.DB, grants *permissions.Store) *SessionViewHandler {
	return &SessionViewHandler{db: db, grants: grants}
}

func (h *SessionViewHandler) Get(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var s models.Session
	if err := h.db.
		Preload("Host").
		Preload("Host.Profile").
		First(&s, "id = ?", sessionID).Error; err != nil {
		httperr.NotFound(c, "session_not_found", "Not found.")
		return
	}

	userID := currentUserID(c)
	if s.HostID != userID {
		allowed, err := h.grants.Has(
			c.Request.Context(),
			userID,
			c.GetString(middleware.ContextUserRole),
			permissions.PermViewSession,
			permissions.EntitySession,
			s.ID,
		)
		if err != nil {
			httperr.Internal(c, "internal_error", "Could not check permissions.")
			return
		}
		if !allowed {
			// Hide the draft's existence from callers without a grant.
			httperr.NotFound(c, "session_not_found", "Not found.")
			return
		}
	}

	httpresp.OK(c, s)
}
