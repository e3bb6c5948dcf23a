package schedule

import (
	"testing"
	"time"
)

func day(date string) time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSlots_MorningWindow(t *testing.T) {
	// open=09:00, close=10:00, increment=20min
	w := AvailabilityWindow{
		Date:      day("2025-03-10"),
		Opens:     TimeOfDay{Hour: 9},
		Closes:    TimeOfDay{Hour: 10},
		Durations: []int{20, 40},
	}

	slots := w.Slots(20)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	want := []string{"09:00", "09:20", "09:40"}
	for i, s := range slots {
		if got := s.Start.Format("15:04"); got != want[i] {
			t.Errorf("slot %d: expected start %s, got %s", i, want[i], got)
		}
		if s.End.Sub(s.Start) != 20*time.Minute {
			t.Errorf("slot %d: expected 20min span, got %s", i, s.End.Sub(s.Start))
		}
	}
}

func TestSlots_NoPartialSlot(t *testing.T) {
	// 09:00-10:30 with 20min increments: the 10:20 start would end at
	// 10:40, past closing, so it must not be generated.
	w := AvailabilityWindow{
		Date:      day("2025-03-10"),
		Opens:     TimeOfDay{Hour: 9},
		Closes:    TimeOfDay{Hour: 10, Minute: 30},
		Durations: []int{20},
	}

	slots := w.Slots(20)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	last := slots[len(slots)-1]
	if last.End.After(w.ClosesAt()) {
		t.Errorf("last slot end %s exceeds closing %s", last.End, w.ClosesAt())
	}
}

func TestSlots_CountInvariant(t *testing.T) {
	cases := []struct {
		open, close TimeOfDay
		increment   int
		want        int
	}{
		{TimeOfDay{Hour: 9}, TimeOfDay{Hour: 17}, 60, 8},
		{TimeOfDay{Hour: 9}, TimeOfDay{Hour: 17}, 45, 10},
		{TimeOfDay{Hour: 9, Minute: 15}, TimeOfDay{Hour: 9, Minute: 45}, 30, 1},
		{TimeOfDay{Hour: 9}, TimeOfDay{Hour: 9, Minute: 10}, 20, 0},
	}

	for _, tc := range cases {
		w := AvailabilityWindow{
			Date:      day("2025-03-10"),
			Opens:     tc.open,
			Closes:    tc.close,
			Durations: []int{tc.increment},
		}

		slots := w.Slots(tc.increment)
		if len(slots) != tc.want {
			t.Errorf("open=%v close=%v inc=%d: expected %d slots, got %d",
				tc.open, tc.close, tc.increment, tc.want, len(slots))
		}

		open, close := w.OpensAt(), w.ClosesAt()
		for _, s := range slots {
			if s.Start.Before(open) || s.End.After(close) {
				t.Errorf("slot [%s, %s) escapes window [%s, %s)", s.Start, s.End, open, close)
			}
		}
	}
}

func TestSlots_InvalidWindow(t *testing.T) {
	w := AvailabilityWindow{
		Date:      day("2025-03-10"),
		Opens:     TimeOfDay{Hour: 17},
		Closes:    TimeOfDay{Hour: 9},
		Durations: []int{30},
	}
	if w.Valid() {
		t.Error("window closing before opening should be invalid")
	}
	if slots := w.Slots(30); slots != nil {
		t.Errorf("invalid window produced %d slots", len(slots))
	}

	// A duration longer than the window also breaks the invariant.
	w = AvailabilityWindow{
		Date:      day("2025-03-10"),
		Opens:     TimeOfDay{Hour: 9},
		Closes:    TimeOfDay{Hour: 10},
		Durations: []int{90},
	}
	if w.Valid() {
		t.Error("duration exceeding the window should be invalid")
	}
}

func TestMinDuration(t *testing.T) {
	w := AvailabilityWindow{Durations: []int{45, 15, 30}}
	if got := w.MinDuration(); got != 15 {
		t.Errorf("expected 15, got %d", got)
	}

	if got := (AvailabilityWindow{}).MinDuration(); got != 0 {
		t.Errorf("expected 0 for empty durations, got %d", got)
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 20, 0, 450_000_000, time.UTC)
	if got := Timestamp(ts); got != "2025-03-10T09:20:00.000+00:00" {
		t.Errorf("unexpected timestamp %q", got)
	}

	// Non-UTC inputs are rendered as UTC instants.
	loc := time.FixedZone("UTC+2", 2*3600)
	ts = time.Date(2025, 3, 10, 11, 20, 0, 0, loc)
	if got := Timestamp(ts); got != "2025-03-10T09:20:00.000+00:00" {
		t.Errorf("unexpected timestamp %q", got)
	}
}
