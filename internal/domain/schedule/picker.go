package schedule

import (
	"encoding/json"
	"time"
)

// ===============================
// Slot picker
// ===============================

// OutputFields are the two hidden form fields the booking endpoint
// consumes. Both hold Timestamp-formatted strings.
type OutputFields struct {
	StartsAt string
	EndsAt   string
}

// SlotPicker drives the calendar interaction: pick a day, pick a start,
// adjust the duration. It is fed two opaque JSON documents rendered by
// the page: an ascending list of permitted durations (minutes) and a
// mapping of "2006-01-02" date strings to [open, close] bounds, each an
// [hour, minute] pair in UTC.
//
// Every operation on a picker that failed to parse its configuration is
// a silent no-op; the server re-validates the final submission anyway.
type SlotPicker struct {
	durations []int
	days      map[string][2]TimeOfDay

	// ready is set once during construction; it replaces any ambient
	// "already initialized" tracking.
	ready bool

	day    string
	starts []time.Time

	start         time.Time
	hasStart      bool
	durationIndex int

	// SelectedDuration mirrors the duration currently shown next to the
	// chosen slot, in minutes.
	SelectedDuration int

	Fields OutputFields
}

type rawBounds [2][2]int

// NewSlotPicker parses the two JSON configuration blobs. Malformed or
// missing input yields a picker whose operations all do nothing.
func NewSlotPicker(durationsJSON, daysJSON []byte) *SlotPicker {
	p := &SlotPicker{durationIndex: -1}

	var durations []int
	if err := json.Unmarshal(durationsJSON, &durations); err != nil || len(durations) == 0 {
		return p
	}
	for _, d := range durations {
		if d <= 0 {
			return p
		}
	}

	var days map[string]rawBounds
	if err := json.Unmarshal(daysJSON, &days); err != nil || len(days) == 0 {
		return p
	}

	p.durations = durations
	p.days = make(map[string][2]TimeOfDay, len(days))
	for date, b := range days {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}
		p.days[date] = [2]TimeOfDay{
			{Hour: b[0][0], Minute: b[0][1]},
			{Hour: b[1][0], Minute: b[1][1]},
		}
	}

	p.ready = len(p.days) > 0
	return p
}

func (p *SlotPicker) Ready() bool { return p.ready }

// SelectDay regenerates the start sequence for the given date using the
// minimum configured duration. Selecting a day the configuration does
// not know about clears the sequence.
func (p *SlotPicker) SelectDay(date string) []time.Time {
	if !p.ready {
		return nil
	}

	bounds, ok := p.days[date]
	if !ok {
		p.day = ""
		p.starts = nil
		return nil
	}

	day, _ := time.Parse("2006-01-02", date)
	w := AvailabilityWindow{
		Date:      day,
		Opens:     bounds[0],
		Closes:    bounds[1],
		Durations: p.durations,
	}

	p.day = date
	p.starts = w.StartTimes()
	return p.starts
}

// SelectStart commits a concrete (start, end) pair into the output
// fields. Later duration changes recompute the end in place; the start
// never moves.
func (p *SlotPicker) SelectStart(start time.Time, durationMin int) {
	if !p.ready || durationMin <= 0 {
		return
	}

	p.start = start.UTC().Truncate(time.Second)
	p.hasStart = true
	p.durationIndex = indexOf(p.durations, durationMin)
	p.SelectedDuration = durationMin

	p.commit(durationMin)
}

// SelectDuration switches the chosen slot to another permitted duration
// by index. Without a committed start, or with an index out of range,
// nothing changes.
func (p *SlotPicker) SelectDuration(index int) {
	if !p.ready || !p.hasStart {
		return
	}
	if index < 0 || index >= len(p.durations) {
		return
	}

	p.durationIndex = index
	p.SelectedDuration = p.durations[index]
	p.commit(p.durations[index])
}

func (p *SlotPicker) commit(durationMin int) {
	end := p.start.Add(time.Duration(durationMin) * time.Minute)
	p.Fields = OutputFields{
		StartsAt: Timestamp(p.start),
		EndsAt:   Timestamp(end),
	}
}

func indexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}
