// internal/calendar/freebusy_test.go

package calendar

import (
	"testing"
	"time"
)

func TestIntervalOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	iv := Interval{Start: base, End: base.Add(time.Hour)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{
			name:  "fully inside",
			other: Interval{Start: base.Add(10 * time.Minute), End: base.Add(20 * time.Minute)},
			want:  true,
		},
		{
			name:  "partial overlap at the end",
			other: Interval{Start: base.Add(50 * time.Minute), End: base.Add(90 * time.Minute)},
			want:  true,
		},
		{
			name:  "touching at the boundary does not overlap",
			other: Interval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)},
			want:  false,
		},
		{
			name:  "entirely before",
			other: Interval{Start: base.Add(-time.Hour), End: base.Add(-30 * time.Minute)},
			want:  false,
		},
		{
			name:  "spanning the whole interval",
			other: Interval{Start: base.Add(-time.Hour), End: base.Add(3 * time.Hour)},
			want:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := iv.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps() = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			if got := tc.other.Overlaps(iv); got != tc.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tc.want)
			}
		})
	}
}
