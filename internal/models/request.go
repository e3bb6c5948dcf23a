package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRequest is a support seeker asking to book one concrete slot of
// a published session.
type SessionRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SessionID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_attendee_session_start,priority:2" json:"session_id"`
	Session   Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"session"`

	AttendeeID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_attendee_session_start,priority:1" json:"attendee_id"`
	Attendee   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"attendee"`

	StartsAt time.Time `gorm:"uniqueIndex:uniq_attendee_session_start,priority:3" json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`

	Status           string `gorm:"size:20;default:'pending'" json:"status"`
	RejectionMessage string `gorm:"type:text" json:"rejection_message"`

	Language           string `gorm:"size:64" json:"language"`
	AccessibilityNeeds string `gorm:"type:text" json:"accessibility_needs"`

	PayConcessionaryPrice bool   `gorm:"default:false" json:"pay_concessionary_price"`
	ConcessionaryStatus   string `gorm:"size:20;default:'pending'" json:"concessionary_status"`

	StripePaymentIntentID string `gorm:"size:320" json:"-"`
	RefundStatus          string `gorm:"size:20;default:'pending'" json:"refund_status"`
	Refunded              bool   `gorm:"default:false" json:"refunded"`

	ApprovedAt  *time.Time `json:"approved_at"`
	RejectedAt  *time.Time `json:"rejected_at"`
	WithdrawnAt *time.Time `json:"withdrawn_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *SessionRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ScheduledSession exists once a request has been approved. The meeting
// link is provisioned shortly before the session starts if it was not
// set by hand.
type ScheduledSession struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	RequestID uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"request_id"`
	Request   SessionRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	MeetingID   string `gorm:"size:100" json:"-"`
	MeetingLink string `gorm:"size:500" json:"meeting_link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ScheduledSession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
