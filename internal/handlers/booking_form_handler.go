package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/neuromancers/session-scheduler/internal/domain/schedule"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/httpresp"
	"github.com/neuromancers/session-scheduler/internal/models"
)

const bookingTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// BookingForm drives the calendar widget server-side: it feeds the
// session's configuration into the slot picker and replays the caller's
// selections (day, start, duration) to produce the hidden submission
// fields.
func (h *PublicHandler) BookingForm(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	day, ok := parseDay(c)
	if !ok {
		return
	}

	var s models.Session
	if err := h.db.
		Where("id = ? AND is_published = true", sessionID).
		First(&s).Error; err != nil {
		httperr.NotFound(c, "session_not_found", "Not found.")
		return
	}

	picker := schedule.NewSlotPicker(
		h.pickerDurations(&s),
		h.pickerDays(&s, day),
	)

	dateKey := day.Format("2006-01-02")
	starts := picker.SelectDay(dateKey)

	if rawStart := c.Query("start"); rawStart != "" {
		start, err := time.Parse(bookingTimestampLayout, rawStart)
		if err != nil {
			httperr.BadRequest(c, "invalid_start", "Malformed start instant.")
			return
		}

		duration := 0
		if raw := c.Query("duration"); raw != "" {
			duration, _ = strconv.Atoi(raw)
		}
		if duration == 0 {
			if ds := s.DurationList(); len(ds) > 0 {
				duration = ds[0]
			}
		}

		picker.SelectStart(start, duration)

		if raw := c.Query("duration_index"); raw != "" {
			if idx, err := strconv.Atoi(raw); err == nil {
				picker.SelectDuration(idx)
			}
		}
	}

	formatted := make([]string, 0, len(starts))
	for _, t := range starts {
		formatted = append(formatted, schedule.Timestamp(t))
	}

	httpresp.OK(c, gin.H{
		"day":               dateKey,
		"starts":            formatted,
		"durations":         s.DurationList(),
		"selected_duration": picker.SelectedDuration,
		"fields": gin.H{
			"starts_at": picker.Fields.StartsAt,
			"ends_at":   picker.Fields.EndsAt,
		},
	})
}

func (h *PublicHandler) pickerDurations(s *models.Session) []byte {
	b, _ := json.Marshal(s.DurationList())
	return b
}

// pickerDays renders the picker's day map for one date: the first
// availability window projected onto it, as [open, close] hour/minute
// pairs.
func (h *PublicHandler) pickerDays(s *models.Session, day time.Time) []byte {
	var records []models.SessionAvailability
	h.db.Where("session_id = ?", s.ID).Find(&records)

	durations := s.DurationList()
	days := map[string][2][2]int{}

	for i := range records {
		windows := domain.ProjectOnDay(&records[i], day, durations)
		if len(windows) == 0 {
			continue
		}
		w := windows[0]
		days[day.Format("2006-01-02")] = [2][2]int{
			{w.Opens.Hour, w.Opens.Minute},
			{w.Closes.Hour, w.Closes.Minute},
		}
		break
	}

	b, _ := json.Marshal(days)
	return b
}
