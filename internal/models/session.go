package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a peer session: bookable by a single support seeker for one
// of the configured durations, inside the host's availability windows.
type Session struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	HostID uuid.UUID `gorm:"type:uuid;index" json:"host_id"`
	Host   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"host"`

	Title       string `gorm:"size:320;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Comma-separated lists, kept in storage exactly as the original
	// system stored them.
	Languages string `gorm:"size:320" json:"languages"`
	Durations string `gorm:"size:320" json:"durations"`

	Currency string `gorm:"size:3;default:'GBP'" json:"currency"`

	// Prices are minor units (pence, cents).
	Price                     int64  `json:"price"`
	ConcessionaryPrice        *int64 `json:"concessionary_price"`
	PerHourPrice              *int64 `json:"per_hour_price"`
	ConcessionaryPerHourPrice *int64 `json:"concessionary_per_hour_price"`

	AccessBeforePayment         bool `gorm:"default:true" json:"access_before_payment"`
	RequireRequestApproval      bool `gorm:"default:true" json:"require_request_approval"`
	RequireConcessionaryApproval bool `gorm:"default:true" json:"require_concessionary_approval"`
	RequireRefundApproval       bool `gorm:"default:true" json:"require_refund_approval"`

	// Filters holds the session's filter selections as JSON:
	// { group_key: { items: { item_key: true } } }
	Filters string `gorm:"type:jsonb;default:'{}'" json:"filters"`

	IsPublished bool `gorm:"default:false" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DurationList parses the stored CSV into minutes, skipping junk.
func (s *Session) DurationList() []int {
	var out []int
	for _, part := range strings.Split(s.Durations, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	return out
}

func (s *Session) LanguageList() []string {
	var out []string
	for _, part := range strings.Split(s.Languages, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
