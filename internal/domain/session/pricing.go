package session

import (
	"time"

	"github.com/neuromancers/session-scheduler/internal/models"
)

// Amount computes what an attendee owes for a request, in minor units.
// Per-hour pricing wins over the flat price when configured; the
// concessionary variants apply when the attendee pays the reduced price.
// A zero result means the session is free for this request.
func Amount(s *models.Session, start, end time.Time, concessionary bool) int64 {
	hours := end.Sub(start).Hours()
	if hours < 0 {
		hours = 0
	}

	if concessionary {
		if s.ConcessionaryPerHourPrice != nil {
			return int64(hours * float64(*s.ConcessionaryPerHourPrice))
		}
		if s.ConcessionaryPrice != nil {
			return *s.ConcessionaryPrice
		}
		return 0
	}

	if s.PerHourPrice != nil {
		return int64(hours * float64(*s.PerHourPrice))
	}
	return s.Price
}
