package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Occurrence values for recurring availability. Empty means one-off.
const (
	OccurrenceHourly  = "hourly"
	OccurrenceDaily   = "daily"
	OccurrenceWeekly  = "weekly"
	OccurrenceMonthly = "monthly"
	OccurrenceYearly  = "yearly"
)

// SessionAvailability is a window of time during which a session may be
// requested. All instants are UTC. A window with an occurrence repeats
// within [OccurrenceStartsAt, OccurrenceEndsAt]; nil bounds mean the
// repetition is open-ended on that side.
type SessionAvailability struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SessionID uuid.UUID `gorm:"type:uuid;index:idx_availability_session;uniqueIndex:uniq_session_window,priority:1" json:"session_id"`
	Session   Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartsAt time.Time `gorm:"uniqueIndex:uniq_session_window,priority:2" json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`

	Occurrence         string     `gorm:"size:10" json:"occurrence"`
	OccurrenceStartsAt *time.Time `gorm:"uniqueIndex:uniq_session_window,priority:3" json:"occurrence_starts_at"`
	OccurrenceEndsAt   *time.Time `json:"occurrence_ends_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *SessionAvailability) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
