// internal/interviews/models.go

package interviews

import "time"

// SlotCount is the number of slots a host must propose. The negotiation
// is a single round: five options out, one answer back.
const SlotCount = 5

// SlotDuration is the booked length of every interview slot.
const SlotDuration = 30 * time.Minute

// InterviewStatus is the lifecycle state of an interview request.
type InterviewStatus string

const (
	StatusAwaitingNanny  InterviewStatus = "awaiting_nanny"
	StatusSlotSelected   InterviewStatus = "slot_selected"
	StatusNoneAvailable  InterviewStatus = "none_available"
	StatusMeetingCreated InterviewStatus = "meeting_created"
)

// InterviewRequest is one host's slot proposal for one proceeded match.
type InterviewRequest struct {
	ID      string `json:"id"`
	MatchID string `json:"match_id"`
	HostID  string `json:"host_id"`
	NannyID string `json:"nanny_id"`

	Slots        []time.Time     `json:"slots"`
	SelectedSlot *time.Time      `json:"selected_slot,omitempty"`
	Status       InterviewStatus `json:"status"`

	MeetingID      string `json:"meeting_id,omitempty"`
	MeetingJoinURL string `json:"meeting_join_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Resolved reports whether the nanny has already answered.
func (r *InterviewRequest) Resolved() bool {
	return r.Status != StatusAwaitingNanny
}

// HasSlot reports whether t is one of the proposed slots.
func (r *InterviewRequest) HasSlot(t time.Time) bool {
	for _, slot := range r.Slots {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}
