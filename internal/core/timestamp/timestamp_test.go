package timestamp

import (
	"testing"
	"time"
)

func TestNowIsUTC(t *testing.T) {
	restore := SetClock(func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	})
	defer restore()

	if got := Now(); got.Location() != time.UTC {
		t.Errorf("Now() location = %v, want UTC", got.Location())
	}
}

func TestNextIsStrictlyMonotonic(t *testing.T) {
	frozen := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	restore := SetClock(func() time.Time { return frozen })
	defer restore()

	tests := []struct {
		name string
		prev time.Time
		want time.Time
	}{
		{"clock ahead", frozen.Add(-time.Second), frozen},
		{"clock equal", frozen, frozen.Add(time.Nanosecond)},
		{"clock behind", frozen.Add(time.Minute), frozen.Add(time.Minute + time.Nanosecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.prev)
			if !got.Equal(tt.want) {
				t.Errorf("Next(%v) = %v, want %v", tt.prev, got, tt.want)
			}
			if !got.After(tt.prev) {
				t.Errorf("Next(%v) = %v is not after prev", tt.prev, got)
			}
		})
	}
}
