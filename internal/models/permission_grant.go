package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionGrant is an object-level grant: a permission over one entity
// for either a single user or every user with a role. Exactly one of
// UserID / Role is set.
type PermissionGrant struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Permission string `gorm:"size:64;not null;uniqueIndex:uniq_grant,priority:1" json:"permission"`

	UserID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_grant,priority:2" json:"user_id"`
	Role   string     `gorm:"size:20;uniqueIndex:uniq_grant,priority:3" json:"role"`

	EntityType string    `gorm:"size:40;not null;uniqueIndex:uniq_grant,priority:4" json:"entity_type"`
	EntityID   uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_grant,priority:5" json:"entity_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (g *PermissionGrant) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
