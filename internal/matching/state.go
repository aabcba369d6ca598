// internal/matching/state.go
// The proceed/pass state machine. All status writes go through
// ApplyDecision; no other code decides what status string to persist.

package matching

import (
	"errors"
	"time"
)

var (
	// ErrMatchResolved rejects a decision that would change an already
	// resolved match (state conflict, not a validation failure).
	ErrMatchResolved = errors.New("match has already been resolved")
)

// ApplyDecision applies one party's proceed/pass choice to a match,
// mutating its flags and status in place. Returns whether anything
// changed, and whether the match transitioned to proceeded during this
// call (the caller owes a conversation in that case).
//
// Legal transitions:
//
//	pending   + proceed  -> pending (waiting on other party) or proceeded
//	pending   + pass     -> passed (a single pass vetoes the match)
//	proceeded + proceed  -> no-op (idempotent re-submission)
//	passed    + pass     -> no-op (idempotent re-submission)
//
// Everything else is rejected with ErrMatchResolved. In particular,
// passed is terminal: a party cannot flip its pass back to a proceed.
func ApplyDecision(m *Match, party Party, decision Decision, now time.Time) (changed, nowProceeded bool, err error) {
	switch m.Status {
	case StatusProceeded:
		if decision == DecisionProceed {
			return false, false, nil
		}
		return false, false, ErrMatchResolved

	case StatusPassed:
		if decision == DecisionPass {
			return false, false, nil
		}
		return false, false, ErrMatchResolved

	case StatusPending:
		// fall through

	default:
		return false, false, ErrMatchResolved
	}

	proceed := decision == DecisionProceed
	setPartyFlag(m, party, proceed)

	if !proceed {
		m.Status = StatusPassed
		return true, false, nil
	}

	if bothProceeded(m) {
		t := now
		m.BothProceedAt = &t
		m.Status = StatusProceeded
		return true, true, nil
	}

	return true, false, nil
}

func setPartyFlag(m *Match, party Party, proceed bool) {
	v := proceed
	if party == PartyHost {
		m.HostProceed = &v
	} else {
		m.NannyProceed = &v
	}
}

func bothProceeded(m *Match) bool {
	return m.HostProceed != nil && *m.HostProceed &&
		m.NannyProceed != nil && *m.NannyProceed
}
