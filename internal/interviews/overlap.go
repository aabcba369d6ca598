// internal/interviews/overlap.go
// Concierge-assisted slot filtering for VIP hosts. A concierge sits in
// on VIP interviews, so slots that collide with the concierge calendar
// are hidden from the nanny.

package interviews

import (
	"context"
	"log"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/calendar"
)

// AllSlotsConflictMessage is shown to the nanny instead of a slot
// picker when every proposed slot collides with the concierge calendar.
const AllSlotsConflictMessage = "Our concierge team is not available at any of the proposed times. The family has been asked to send new times."

// FilterSlotsByConciergeFree removes slots whose booking window overlaps
// a busy interval on the concierge calendar.
//
// A calendar lookup error returns every slot with no message:
// availability lookup is a convenience, never a blocker. When every
// slot conflicts the round is a soft failure: no slots come back, only
// the message telling the nanny the host will propose new times.
func FilterSlotsByConciergeFree(ctx context.Context, fb calendar.FreeBusyService, calendarID string, slots []time.Time) ([]time.Time, string) {
	if fb == nil || calendarID == "" || len(slots) == 0 {
		return slots, ""
	}

	from, to := slotSpan(slots)
	busy, err := fb.BusyIntervals(ctx, calendarID, from, to)
	if err != nil {
		log.Printf("Concierge free/busy lookup failed, showing all slots: %v", err)
		return slots, ""
	}

	available := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		window := calendar.Interval{Start: slot, End: slot.Add(SlotDuration)}
		if !overlapsAny(window, busy) {
			available = append(available, slot)
		}
	}

	if len(available) == 0 {
		return nil, AllSlotsConflictMessage
	}
	return available, ""
}

// slotSpan is the single query window covering every slot, so one
// free/busy call serves the whole proposal.
func slotSpan(slots []time.Time) (time.Time, time.Time) {
	from, to := slots[0], slots[0]
	for _, slot := range slots[1:] {
		if slot.Before(from) {
			from = slot
		}
		if slot.After(to) {
			to = slot
		}
	}
	return from, to.Add(SlotDuration)
}

func overlapsAny(window calendar.Interval, busy []calendar.Interval) bool {
	for _, interval := range busy {
		if window.Overlaps(interval) {
			return true
		}
	}
	return false
}
