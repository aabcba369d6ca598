// internal/interviews/overlap_test.go

package interviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/calendar"
)

// fakeFreeBusy returns canned busy intervals or an error.
type fakeFreeBusy struct {
	busy []calendar.Interval
	err  error

	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeFreeBusy) BusyIntervals(_ context.Context, _ string, from, to time.Time) ([]calendar.Interval, error) {
	f.gotFrom, f.gotTo = from, to
	return f.busy, f.err
}

func proposedSlots() []time.Time {
	base := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	return []time.Time{
		base,
		base.Add(2 * time.Hour),
		base.Add(4 * time.Hour),
		base.Add(6 * time.Hour),
		base.Add(8 * time.Hour),
	}
}

func TestFilterSlotsByConciergeFree(t *testing.T) {
	ctx := context.Background()
	slots := proposedSlots()

	t.Run("conflicting slots are hidden", func(t *testing.T) {
		// Busy over the second slot's window.
		fb := &fakeFreeBusy{busy: []calendar.Interval{
			{Start: slots[1], End: slots[1].Add(time.Hour)},
		}}

		available, message := FilterSlotsByConciergeFree(ctx, fb, "concierge@hellonanny.co", slots)
		if len(available) != 4 {
			t.Fatalf("got %d slots, want 4", len(available))
		}
		for _, slot := range available {
			if slot.Equal(slots[1]) {
				t.Error("conflicting slot still visible")
			}
		}
		if message != "" {
			t.Errorf("unexpected message %q", message)
		}
	})

	t.Run("one query covers the whole proposal span", func(t *testing.T) {
		fb := &fakeFreeBusy{}
		FilterSlotsByConciergeFree(ctx, fb, "concierge@hellonanny.co", slots)

		if !fb.gotFrom.Equal(slots[0]) {
			t.Errorf("query start = %v, want %v", fb.gotFrom, slots[0])
		}
		wantTo := slots[4].Add(SlotDuration)
		if !fb.gotTo.Equal(wantTo) {
			t.Errorf("query end = %v, want %v", fb.gotTo, wantTo)
		}
	})

	t.Run("a lookup failure shows every slot with no message", func(t *testing.T) {
		fb := &fakeFreeBusy{err: errors.New("calendar unavailable")}

		available, message := FilterSlotsByConciergeFree(ctx, fb, "concierge@hellonanny.co", slots)
		if len(available) != len(slots) {
			t.Fatalf("got %d slots, want all %d", len(available), len(slots))
		}
		if message != "" {
			t.Errorf("unexpected message %q", message)
		}
	})

	t.Run("all slots conflicting returns no slots and the notice", func(t *testing.T) {
		fb := &fakeFreeBusy{busy: []calendar.Interval{
			{Start: slots[0].Add(-time.Hour), End: slots[4].Add(24 * time.Hour)},
		}}

		available, message := FilterSlotsByConciergeFree(ctx, fb, "concierge@hellonanny.co", slots)
		if len(available) != 0 {
			t.Fatalf("got %d slots, want none", len(available))
		}
		if message != AllSlotsConflictMessage {
			t.Errorf("message = %q, want the conflict notice", message)
		}
	})

	t.Run("no configured calendar passes slots through", func(t *testing.T) {
		available, message := FilterSlotsByConciergeFree(ctx, nil, "", slots)
		if len(available) != len(slots) || message != "" {
			t.Errorf("got %d slots, message %q; want passthrough", len(available), message)
		}
	})

	t.Run("a busy interval touching a slot boundary does not hide it", func(t *testing.T) {
		fb := &fakeFreeBusy{busy: []calendar.Interval{
			{Start: slots[0].Add(SlotDuration), End: slots[0].Add(time.Hour)},
		}}

		available, _ := FilterSlotsByConciergeFree(ctx, fb, "concierge@hellonanny.co", slots)
		found := false
		for _, slot := range available {
			if slot.Equal(slots[0]) {
				found = true
			}
		}
		if !found {
			t.Error("slot hidden by a back-to-back busy interval")
		}
	})
}
