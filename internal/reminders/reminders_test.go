package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Consecutive runs must produce overlapping or contiguous query
// windows; a gap means sessions starting inside it never get their
// reminder.
func TestReminderWindowsTile(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		lead     time.Duration
		buffer   time.Duration
	}{
		{"day reminder", time.Hour, 24 * time.Hour, dayReminderBuffer},
		{"hour reminder", 15 * time.Minute, time.Hour, hourReminderBuffer},
	}

	tick := time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upper := tick.Add(tt.lead + tt.buffer)
			nextLower := tick.Add(tt.interval).Add(tt.lead - tt.buffer)

			assert.False(t, nextLower.After(upper),
				"sessions starting in [%v, %v) are never matched",
				upper, nextLower)
		})
	}
}
