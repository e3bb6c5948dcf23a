package schedule

import "time"

// ===============================
// Availability windows
// ===============================

// TimeOfDay is an hour/minute pair inside a single UTC day.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour, t.Minute, 0, 0,
		time.UTC,
	)
}

// AvailabilityWindow is one bookable day: a calendar date, opening and
// closing bounds and the duration increments (minutes) a session may be
// booked for. All instants are UTC; display conversion is someone
// else's job.
type AvailabilityWindow struct {
	Date      time.Time
	Opens     TimeOfDay
	Closes    TimeOfDay
	Durations []int
}

func (w AvailabilityWindow) OpensAt() time.Time  { return w.Opens.On(w.Date) }
func (w AvailabilityWindow) ClosesAt() time.Time { return w.Closes.On(w.Date) }

// Valid reports whether the window satisfies its invariants: opening
// before closing, every duration positive and no longer than the window.
func (w AvailabilityWindow) Valid() bool {
	open := w.OpensAt()
	close := w.ClosesAt()
	if !open.Before(close) {
		return false
	}

	span := int(close.Sub(open) / time.Minute)
	for _, d := range w.Durations {
		if d <= 0 || d > span {
			return false
		}
	}
	return true
}

// MinDuration returns the smallest configured increment, or 0 when none
// are configured.
func (w AvailabilityWindow) MinDuration() int {
	min := 0
	for _, d := range w.Durations {
		if min == 0 || d < min {
			min = d
		}
	}
	return min
}

// ===============================
// Bookable slots
// ===============================

// BookableSlot is a derived, ephemeral value: one concrete interval a
// session may be requested for. Never persisted.
type BookableSlot struct {
	Start time.Time
	End   time.Time
}

// Slots splits the window into discrete bookable intervals stepping from
// the opening bound by incrementMin minutes. A final start whose end
// would run past the closing bound is excluded: no partial slots.
func (w AvailabilityWindow) Slots(incrementMin int) []BookableSlot {
	if incrementMin <= 0 || !w.Valid() {
		return nil
	}

	step := time.Duration(incrementMin) * time.Minute
	close := w.ClosesAt()

	var slots []BookableSlot
	for cur := w.OpensAt(); !cur.Add(step).After(close); cur = cur.Add(step) {
		slots = append(slots, BookableSlot{
			Start: cur,
			End:   cur.Add(step),
		})
	}

	return slots
}

// StartTimes enumerates the slot starts for the window's minimum
// configured increment.
func (w AvailabilityWindow) StartTimes() []time.Time {
	slots := w.Slots(w.MinDuration())

	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	return starts
}

// Timestamp renders a UTC instant the way the booking form expects it:
// ISO-8601 with millisecond precision and an explicit +00:00 offset.
// Sub-second noise is truncated first; the minimum granularity of the
// whole system is one minute.
func Timestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05.000+00:00")
}
