package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delivery channel preferences, per notification subject.
const (
	NotifyNone  = "none"
	NotifyWeb   = "web"
	NotifyEmail = "email"
	NotifyAll   = "all"
)

// Notification subjects.
const (
	SubjectAccount  = "account"
	SubjectPayment  = "payment"
	SubjectSession  = "session"
	SubjectReminder = "reminder"
)

type NotificationSettings struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Account  string `gorm:"size:10;default:'all'" json:"account"`
	Payment  string `gorm:"size:10;default:'all'" json:"payment"`
	Session  string `gorm:"size:10;default:'all'" json:"session"`
	Reminder string `gorm:"size:10;default:'all'" json:"reminder"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *NotificationSettings) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// WantsEmail reports whether email delivery is enabled for a subject.
// Missing settings default to all channels.
func (n *NotificationSettings) WantsEmail(subject string) bool {
	if n == nil {
		return true
	}

	var pref string
	switch subject {
	case SubjectAccount:
		pref = n.Account
	case SubjectPayment:
		pref = n.Payment
	case SubjectSession:
		pref = n.Session
	case SubjectReminder:
		pref = n.Reminder
	default:
		return false
	}

	return pref == NotifyEmail || pref == NotifyAll || pref == ""
}
