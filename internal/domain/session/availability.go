package session

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityInput struct {
	SessionID uuid.UUID
	Day       time.Time
}

// TimeSlot is one bookable interval rendered for the calendar, in the
// booking form's timestamp format.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
