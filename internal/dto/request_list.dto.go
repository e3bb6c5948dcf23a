package dto

import (
	"github.com/google/uuid"

	"github.com/neuromancers/session-scheduler/internal/domain/schedule"
	"github.com/neuromancers/session-scheduler/internal/models"
)

type RequestListDTO struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	SessionTitle string    `json:"session_title"`
	AttendeeName string    `json:"attendee_name"`
	StartsAt     string    `json:"starts_at"`
	EndsAt       string    `json:"ends_at"`
	Status       string    `json:"status"`
	Refunded     bool      `json:"refunded"`
}

func NewRequestListDTO(r *models.SessionRequest) RequestListDTO {
	return RequestListDTO{
		ID:           r.ID,
		SessionID:    r.SessionID,
		SessionTitle: r.Session.Title,
		AttendeeName: r.Attendee.Username,
		StartsAt:     schedule.Timestamp(r.StartsAt),
		EndsAt:       schedule.Timestamp(r.EndsAt),
		Status:       r.Status,
		Refunded:     r.Refunded,
	}
}
