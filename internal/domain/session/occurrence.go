package session

import (
	"time"

	"github.com/neuromancers/session-scheduler/internal/domain/schedule"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// ProjectOnDay maps an availability record onto one requested UTC day,
// yielding the concrete windows open on that day. A one-off record only
// matches its own date; recurring records match any day the pattern
// lands on inside the occurrence range.
func ProjectOnDay(
	av *models.SessionAvailability,
	day time.Time,
	durations []int,
) []schedule.AvailabilityWindow {

	day = day.UTC()
	base := av.StartsAt.UTC()

	if !inOccurrenceRange(av, day) {
		return nil
	}

	matches := false
	switch av.Occurrence {
	case "":
		matches = sameDate(base, day)
	case models.OccurrenceHourly, models.OccurrenceDaily:
		matches = !day.Before(truncateDay(base))
	case models.OccurrenceWeekly:
		matches = !day.Before(truncateDay(base)) && base.Weekday() == day.Weekday()
	case models.OccurrenceMonthly:
		matches = !day.Before(truncateDay(base)) && base.Day() == day.Day()
	case models.OccurrenceYearly:
		matches = !day.Before(truncateDay(base)) &&
			base.Month() == day.Month() && base.Day() == day.Day()
	}
	if !matches {
		return nil
	}

	open := schedule.TimeOfDay{Hour: base.Hour(), Minute: base.Minute()}
	end := av.EndsAt.UTC()
	close := schedule.TimeOfDay{Hour: end.Hour(), Minute: end.Minute()}

	window := schedule.AvailabilityWindow{
		Date:      day,
		Opens:     open,
		Closes:    close,
		Durations: durations,
	}

	if av.Occurrence != models.OccurrenceHourly {
		if !window.Valid() {
			return nil
		}
		return []schedule.AvailabilityWindow{window}
	}

	// Hourly records repeat the window's span every hour from the base
	// start until the day runs out; spans that would cross midnight are
	// dropped.
	span := end.Sub(base)
	if span <= 0 {
		return nil
	}

	var windows []schedule.AvailabilityWindow
	for h := base.Hour(); h < 24; h++ {
		opens := schedule.TimeOfDay{Hour: h, Minute: base.Minute()}
		closesAt := opens.On(day).Add(span)
		if !sameDate(closesAt, day) && !closesAt.Equal(truncateDay(day).Add(24*time.Hour)) {
			break
		}

		w := schedule.AvailabilityWindow{
			Date:      day,
			Opens:     opens,
			Closes:    schedule.TimeOfDay{Hour: closesAt.Hour(), Minute: closesAt.Minute()},
			Durations: durations,
		}
		if closesAt.Hour() == 0 && closesAt.Minute() == 0 {
			// The window ends exactly at midnight; represent the close
			// as 24:00 via a zero-hour close on the next stepping, which
			// AvailabilityWindow cannot express. Skip it.
			break
		}
		if w.Valid() {
			windows = append(windows, w)
		}
	}
	return windows
}

func inOccurrenceRange(av *models.SessionAvailability, day time.Time) bool {
	if av.Occurrence == "" {
		return true
	}
	if av.OccurrenceStartsAt != nil && day.Before(truncateDay(av.OccurrenceStartsAt.UTC())) {
		return false
	}
	if av.OccurrenceEndsAt != nil && truncateDay(day).After(truncateDay(av.OccurrenceEndsAt.UTC())) {
		return false
	}
	return true
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
