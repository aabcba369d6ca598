// internal/interviews/dto.go

package interviews

// CreateInterviewRequest proposes slots for a proceeded match. Slots are
// RFC 3339 timestamps; exactly five are required.
type CreateInterviewRequest struct {
	MatchID string   `json:"match_id" validate:"required"`
	Slots   []string `json:"slots" validate:"required,len=5,dive,required"`
}

// SelectSlotRequest is the nanny's answer: one of the proposed slots.
// Callers identify themselves with either the interview link token or a
// logged-in nanny session plus the match ID.
type SelectSlotRequest struct {
	Token   string `json:"token,omitempty"`
	MatchID string `json:"match_id,omitempty"`
	Slot    string `json:"slot" validate:"required"`
}

// DeclineRequest reports that none of the proposed slots work. Same
// token-or-session identification as SelectSlotRequest.
type DeclineRequest struct {
	Token   string `json:"token,omitempty"`
	MatchID string `json:"match_id,omitempty"`
}
