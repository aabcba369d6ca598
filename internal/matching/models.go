// internal/matching/models.go

package matching

import (
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
)

// MatchStatus is the lifecycle state of a Match.
type MatchStatus string

const (
	StatusPending   MatchStatus = "pending"
	StatusProceeded MatchStatus = "proceeded"
	StatusPassed    MatchStatus = "passed"
)

// Party identifies which side of a match is acting.
type Party string

const (
	PartyHost  Party = "host"
	PartyNanny Party = "nanny"
)

// Decision is a party's proceed/pass choice.
type Decision string

const (
	DecisionProceed Decision = "proceed"
	DecisionPass    Decision = "pass"
)

// Match pairs one host with one nanny. The proceed flags are tri-state:
// nil until that party has decided.
type Match struct {
	ID      string `json:"id"`
	HostID  string `json:"host_id"`
	NannyID string `json:"nanny_id"`

	Score         MatchScore  `json:"score"`
	HostProceed   *bool       `json:"host_proceed,omitempty"`
	NannyProceed  *bool       `json:"nanny_proceed,omitempty"`
	BothProceedAt *time.Time  `json:"both_proceed_at,omitempty"`
	Status        MatchStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

// Shortlist is an ordered set of match IDs delivered to one host at one
// time. The match list is immutable after creation.
type Shortlist struct {
	ID        string    `json:"id"`
	HostID    string    `json:"host_id"`
	MatchIDs  []string  `json:"match_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// RankedNanny is one scored candidate in engine output.
type RankedNanny struct {
	Nanny *profiles.Nanny `json:"nanny"`
	Score MatchScore      `json:"score"`
}
