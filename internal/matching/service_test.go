// internal/matching/service_test.go

package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	hosts      map[string]*profiles.Host
	nannies    map[string]*profiles.Nanny
	matches    map[string]*Match
	shortlists map[string]*Shortlist
	nextID     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		hosts:      make(map[string]*profiles.Host),
		nannies:    make(map[string]*profiles.Nanny),
		matches:    make(map[string]*Match),
		shortlists: make(map[string]*Shortlist),
	}
}

func (f *fakeRepo) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeRepo) GetHost(_ context.Context, hostID string) (*profiles.Host, error) {
	host, ok := f.hosts[hostID]
	if !ok {
		return nil, ErrHostNotFound
	}
	return host, nil
}

func (f *fakeRepo) GetNanny(_ context.Context, nannyID string) (*profiles.Nanny, error) {
	nanny, ok := f.nannies[nannyID]
	if !ok {
		return nil, ErrNannyNotFound
	}
	return nanny, nil
}

func (f *fakeRepo) ListNanniesByBadge(_ context.Context, badge profiles.NannyBadge, limit int) ([]*profiles.Nanny, error) {
	var out []*profiles.Nanny
	for _, nanny := range f.nannies {
		if nanny.Badge == badge && len(out) < limit {
			out = append(out, nanny)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateMatch(_ context.Context, match *Match) error {
	match.ID = f.id("match")
	match.CreatedAt = time.Now()
	f.matches[match.ID] = match
	return nil
}

func (f *fakeRepo) GetMatch(_ context.Context, matchID string) (*Match, error) {
	match, ok := f.matches[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return match, nil
}

func (f *fakeRepo) UpdateMatchDecision(_ context.Context, match *Match) error {
	if _, ok := f.matches[match.ID]; !ok {
		return ErrMatchNotFound
	}
	f.matches[match.ID] = match
	return nil
}

func (f *fakeRepo) UpdateMatchScore(_ context.Context, matchID string, score MatchScore) error {
	match, ok := f.matches[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	match.Score = score
	return nil
}

func (f *fakeRepo) CreateShortlist(_ context.Context, shortlist *Shortlist) error {
	shortlist.ID = f.id("shortlist")
	shortlist.CreatedAt = time.Now()
	f.shortlists[shortlist.ID] = shortlist
	return nil
}

func (f *fakeRepo) GetShortlist(_ context.Context, shortlistID string) (*Shortlist, error) {
	shortlist, ok := f.shortlists[shortlistID]
	if !ok {
		return nil, errors.New("shortlist not found")
	}
	return shortlist, nil
}

// fakeConversations records EnsureForMatch calls.
type fakeConversations struct {
	ensured map[string]int
	fail    bool
}

func newFakeConversations() *fakeConversations {
	return &fakeConversations{ensured: make(map[string]int)}
}

func (f *fakeConversations) EnsureForMatch(_ context.Context, matchID, _, _ string) (string, bool, error) {
	if f.fail {
		return "", false, errors.New("conversation store unavailable")
	}
	f.ensured[matchID]++
	return "conv-" + matchID, f.ensured[matchID] == 1, nil
}

func newTestService(repo *fakeRepo, conversations *fakeConversations) (Service, *tokens.Issuer) {
	issuer := tokens.NewIssuer("test-secret", time.Hour)
	svc := NewService(repo, conversations, nil, issuer, ServiceConfig{
		MinScore:      60,
		ShortlistSize: 3,
		MaxCandidates: 100,
		BaseURL:       "http://localhost:8080",
	})
	return svc, issuer
}

func seedCompatiblePair(repo *fakeRepo) (*profiles.Host, *profiles.Nanny) {
	host, nanny := perfectPair()
	host.ID = "hostA"
	host.Tier = profiles.TierStandard
	nanny.ID = "nannyA"
	nanny.Badge = profiles.BadgeVerified
	repo.hosts[host.ID] = host
	repo.nannies[nanny.ID] = nanny
	return host, nanny
}

func TestCreateShortlistForHost(t *testing.T) {
	t.Run("persists matches and shortlist for a compatible pool", func(t *testing.T) {
		repo := newFakeRepo()
		host, nanny := seedCompatiblePair(repo)
		svc, _ := newTestService(repo, newFakeConversations())

		result, err := svc.CreateShortlistForHost(context.Background(), host.ID)
		if err != nil {
			t.Fatalf("CreateShortlistForHost: %v", err)
		}

		if len(result.Matches) != 1 {
			t.Fatalf("got %d matches, want 1", len(result.Matches))
		}
		match := result.Matches[0]
		if match.NannyID != nanny.ID || match.Status != StatusPending {
			t.Errorf("match = %+v, want pending match for %s", match, nanny.ID)
		}
		if match.ID == "" {
			t.Error("match was not persisted")
		}
		if result.Shortlist.ID == "" || len(result.Shortlist.MatchIDs) != 1 {
			t.Errorf("shortlist = %+v, want one persisted match ID", result.Shortlist)
		}
		if result.ReviewToken == "" {
			t.Error("missing review token")
		}
	})

	t.Run("fails fast when the host does not exist", func(t *testing.T) {
		repo := newFakeRepo()
		svc, _ := newTestService(repo, newFakeConversations())

		if _, err := svc.CreateShortlistForHost(context.Background(), "missing"); !errors.Is(err, ErrHostNotFound) {
			t.Fatalf("err = %v, want ErrHostNotFound", err)
		}
		if len(repo.matches) != 0 || len(repo.shortlists) != 0 {
			t.Error("partial shortlist persisted for a missing host")
		}
	})

	t.Run("excludes certified nannies for non-VIP hosts", func(t *testing.T) {
		repo := newFakeRepo()
		host, _ := seedCompatiblePair(repo)

		_, certified := perfectPair()
		certified.ID = "certified"
		certified.Badge = profiles.BadgeCertified
		repo.nannies[certified.ID] = certified

		svc, _ := newTestService(repo, newFakeConversations())
		result, err := svc.CreateShortlistForHost(context.Background(), host.ID)
		if err != nil {
			t.Fatalf("CreateShortlistForHost: %v", err)
		}

		for _, match := range result.Matches {
			if match.NannyID == "certified" {
				t.Error("certified nanny surfaced for a standard-tier host")
			}
		}

		host.Tier = profiles.TierVIP
		result, err = svc.CreateShortlistForHost(context.Background(), host.ID)
		if err != nil {
			t.Fatalf("VIP CreateShortlistForHost: %v", err)
		}
		found := false
		for _, match := range result.Matches {
			if match.NannyID == "certified" {
				found = true
			}
		}
		if !found {
			t.Error("certified nanny missing from a VIP host's shortlist")
		}
	})
}

func TestProceedPass(t *testing.T) {
	setup := func(t *testing.T) (Service, *tokens.Issuer, *fakeRepo, *fakeConversations, *Match) {
		t.Helper()
		repo := newFakeRepo()
		host, nanny := seedCompatiblePair(repo)
		conversations := newFakeConversations()
		svc, issuer := newTestService(repo, conversations)

		match := &Match{HostID: host.ID, NannyID: nanny.ID, Status: StatusPending}
		if err := repo.CreateMatch(context.Background(), match); err != nil {
			t.Fatalf("seed match: %v", err)
		}
		return svc, issuer, repo, conversations, match
	}

	t.Run("mutual proceed creates the conversation once", func(t *testing.T) {
		svc, issuer, _, conversations, match := setup(t)

		hostToken, _ := issuer.GenerateProceedPassToken(match.ID, tokens.RoleHost)
		nannyToken, _ := issuer.GenerateProceedPassToken(match.ID, tokens.RoleNanny)

		m, err := svc.ProceedPass(context.Background(), hostToken, DecisionProceed)
		if err != nil {
			t.Fatalf("host proceed: %v", err)
		}
		if m.Status != StatusPending {
			t.Errorf("status after one proceed = %s, want pending", m.Status)
		}

		m, err = svc.ProceedPass(context.Background(), nannyToken, DecisionProceed)
		if err != nil {
			t.Fatalf("nanny proceed: %v", err)
		}
		if m.Status != StatusProceeded {
			t.Errorf("status = %s, want proceeded", m.Status)
		}
		if conversations.ensured[match.ID] != 1 {
			t.Errorf("conversation ensured %d times, want 1", conversations.ensured[match.ID])
		}

		// Idempotent re-submission must not re-create the conversation.
		if _, err := svc.ProceedPass(context.Background(), nannyToken, DecisionProceed); err != nil {
			t.Fatalf("re-submission: %v", err)
		}
		if conversations.ensured[match.ID] != 1 {
			t.Errorf("conversation ensured %d times after re-submission, want 1", conversations.ensured[match.ID])
		}
	})

	t.Run("a pass terminates and a later proceed conflicts", func(t *testing.T) {
		svc, issuer, _, conversations, match := setup(t)

		hostToken, _ := issuer.GenerateProceedPassToken(match.ID, tokens.RoleHost)
		nannyToken, _ := issuer.GenerateProceedPassToken(match.ID, tokens.RoleNanny)

		m, err := svc.ProceedPass(context.Background(), hostToken, DecisionPass)
		if err != nil {
			t.Fatalf("host pass: %v", err)
		}
		if m.Status != StatusPassed {
			t.Errorf("status = %s, want passed", m.Status)
		}

		if _, err := svc.ProceedPass(context.Background(), nannyToken, DecisionProceed); !errors.Is(err, ErrMatchResolved) {
			t.Errorf("proceed on passed match: err = %v, want ErrMatchResolved", err)
		}
		if len(conversations.ensured) != 0 {
			t.Error("conversation created for a passed match")
		}
	})

	t.Run("rejects tokens of the wrong type", func(t *testing.T) {
		svc, issuer, _, _, _ := setup(t)

		chatToken, _ := issuer.GenerateChatToken("convA", tokens.RoleHost)
		if _, err := svc.ProceedPass(context.Background(), chatToken, DecisionProceed); !errors.Is(err, tokens.ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("rejects an unknown choice before touching the store", func(t *testing.T) {
		svc, _, _, _, _ := setup(t)
		if _, err := svc.ProceedPass(context.Background(), "whatever", Decision("maybe")); !errors.Is(err, ErrInvalidChoice) {
			t.Errorf("err = %v, want ErrInvalidChoice", err)
		}
	})
}

func TestOverrideMatchScore(t *testing.T) {
	repo := newFakeRepo()
	seedCompatiblePair(repo)
	svc, _ := newTestService(repo, newFakeConversations())

	match := &Match{HostID: "hostA", NannyID: "nannyA", Status: StatusPending, Score: MatchScore{Total: 72}}
	if err := repo.CreateMatch(context.Background(), match); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	updated, err := svc.OverrideMatchScore(context.Background(), match.ID, 95)
	if err != nil {
		t.Fatalf("OverrideMatchScore: %v", err)
	}
	if updated.Score.Total != 95 {
		t.Errorf("total = %v, want 95", updated.Score.Total)
	}

	// Out-of-range overrides clamp to the score bounds.
	updated, err = svc.OverrideMatchScore(context.Background(), match.ID, 140)
	if err != nil {
		t.Fatalf("OverrideMatchScore: %v", err)
	}
	if updated.Score.Total != 100 {
		t.Errorf("total = %v, want clamped to 100", updated.Score.Total)
	}
}
