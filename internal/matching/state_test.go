// internal/matching/state_test.go

package matching

import (
	"errors"
	"testing"
	"time"
)

func pendingMatch() *Match {
	return &Match{ID: "matchA", HostID: "hostA", NannyID: "nannyA", Status: StatusPending}
}

func TestApplyDecision(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first proceed leaves match pending", func(t *testing.T) {
		m := pendingMatch()
		changed, nowProceeded, err := ApplyDecision(m, PartyHost, DecisionProceed, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !changed || nowProceeded {
			t.Fatalf("got changed=%v nowProceeded=%v, want true/false", changed, nowProceeded)
		}
		if m.Status != StatusPending {
			t.Errorf("status = %s, want pending", m.Status)
		}
		if m.HostProceed == nil || !*m.HostProceed {
			t.Error("host proceed flag not set")
		}
		if m.BothProceedAt != nil {
			t.Error("both-proceed timestamp set prematurely")
		}
	})

	t.Run("second proceed transitions to proceeded", func(t *testing.T) {
		m := pendingMatch()
		if _, _, err := ApplyDecision(m, PartyHost, DecisionProceed, now); err != nil {
			t.Fatalf("host proceed: %v", err)
		}

		changed, nowProceeded, err := ApplyDecision(m, PartyNanny, DecisionProceed, now)
		if err != nil {
			t.Fatalf("nanny proceed: %v", err)
		}
		if !changed || !nowProceeded {
			t.Fatalf("got changed=%v nowProceeded=%v, want true/true", changed, nowProceeded)
		}
		if m.Status != StatusProceeded {
			t.Errorf("status = %s, want proceeded", m.Status)
		}
		if m.BothProceedAt == nil || !m.BothProceedAt.Equal(now) {
			t.Errorf("both-proceed timestamp = %v, want %v", m.BothProceedAt, now)
		}
	})

	t.Run("a single pass terminates the match", func(t *testing.T) {
		m := pendingMatch()
		changed, nowProceeded, err := ApplyDecision(m, PartyNanny, DecisionPass, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !changed || nowProceeded {
			t.Fatalf("got changed=%v nowProceeded=%v, want true/false", changed, nowProceeded)
		}
		if m.Status != StatusPassed {
			t.Errorf("status = %s, want passed", m.Status)
		}
	})

	t.Run("pass after the other party proceeded still passes", func(t *testing.T) {
		m := pendingMatch()
		if _, _, err := ApplyDecision(m, PartyHost, DecisionProceed, now); err != nil {
			t.Fatalf("host proceed: %v", err)
		}
		if _, _, err := ApplyDecision(m, PartyNanny, DecisionPass, now); err != nil {
			t.Fatalf("nanny pass: %v", err)
		}
		if m.Status != StatusPassed {
			t.Errorf("status = %s, want passed", m.Status)
		}
	})

	t.Run("re-submitting the resolving decision is a no-op", func(t *testing.T) {
		m := pendingMatch()
		mustApply(t, m, PartyHost, DecisionProceed, now)
		mustApply(t, m, PartyNanny, DecisionProceed, now)

		changed, nowProceeded, err := ApplyDecision(m, PartyHost, DecisionProceed, now.Add(time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if changed || nowProceeded {
			t.Fatalf("got changed=%v nowProceeded=%v, want false/false", changed, nowProceeded)
		}
		if !m.BothProceedAt.Equal(now) {
			t.Error("both-proceed timestamp changed on re-submission")
		}
	})

	t.Run("flipping a resolved match is rejected", func(t *testing.T) {
		passed := pendingMatch()
		mustApply(t, passed, PartyHost, DecisionPass, now)
		if _, _, err := ApplyDecision(passed, PartyHost, DecisionProceed, now); !errors.Is(err, ErrMatchResolved) {
			t.Errorf("proceed on passed match: err = %v, want ErrMatchResolved", err)
		}

		proceeded := pendingMatch()
		mustApply(t, proceeded, PartyHost, DecisionProceed, now)
		mustApply(t, proceeded, PartyNanny, DecisionProceed, now)
		if _, _, err := ApplyDecision(proceeded, PartyNanny, DecisionPass, now); !errors.Is(err, ErrMatchResolved) {
			t.Errorf("pass on proceeded match: err = %v, want ErrMatchResolved", err)
		}
	})

	t.Run("an unknown status is rejected", func(t *testing.T) {
		m := pendingMatch()
		m.Status = MatchStatus("archived")
		if _, _, err := ApplyDecision(m, PartyHost, DecisionProceed, now); !errors.Is(err, ErrMatchResolved) {
			t.Errorf("err = %v, want ErrMatchResolved", err)
		}
	})
}

func mustApply(t *testing.T, m *Match, party Party, decision Decision, now time.Time) {
	t.Helper()
	if _, _, err := ApplyDecision(m, party, decision, now); err != nil {
		t.Fatalf("ApplyDecision(%s, %s): %v", party, decision, err)
	}
}
