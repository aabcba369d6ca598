// internal/matching/dto.go

package matching

// GenerateShortlistRequest triggers shortlist generation. Hosts may omit
// HostID (their own profile is used); matchmakers must supply it.
type GenerateShortlistRequest struct {
	HostID string `json:"host_id" validate:"omitempty"`
}

// ProceedPassRequest carries one party's decision on a match. The token
// comes from the emailed proceed-pass link.
type ProceedPassRequest struct {
	Token  string `json:"token" validate:"required"`
	Choice string `json:"choice" validate:"required,oneof=proceed pass"`
}

// ManualMatchRequest is a matchmaker pairing a host and nanny directly.
type ManualMatchRequest struct {
	HostID  string `json:"host_id" validate:"required"`
	NannyID string `json:"nanny_id" validate:"required"`
}

// OverrideScoreRequest overwrites a match's total score.
type OverrideScoreRequest struct {
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}
