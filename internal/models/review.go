package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionReview is left by an attendee after an approved session.
type SessionReview struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SessionID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_review_per_attendee,priority:1" json:"session_id"`
	Session   Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AttendeeID uuid.UUID `gorm:"type:uuid;uniqueIndex:uniq_review_per_attendee,priority:2" json:"attendee_id"`
	Attendee   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"attendee"`

	Rating  int    `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"`
	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *SessionReview) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
