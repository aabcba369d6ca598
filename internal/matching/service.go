// internal/matching/service.go

package matching

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

var (
	ErrInvalidChoice = errors.New("choice must be proceed or pass")
)

// ConversationService is the slice of the messaging layer the match
// lifecycle needs: one idempotent ensure-per-match call.
type ConversationService interface {
	EnsureForMatch(ctx context.Context, matchID, hostID, nannyID string) (conversationID string, created bool, err error)
}

// Notifier delivers fire-and-forget notifications. Implementations must
// never propagate failures.
type Notifier interface {
	ShortlistReady(ctx context.Context, host *profiles.Host, reviewURL string)
	DecisionRequested(ctx context.Context, host *profiles.Host, nanny *profiles.Nanny, awaitingRole, decideURL string)
	MatchProceeded(ctx context.Context, host *profiles.Host, nanny *profiles.Nanny, conversationID string)
}

// ShortlistResult is what a shortlist-generation run hands back: the
// persisted records plus the CV review token for the host's email link.
type ShortlistResult struct {
	Shortlist   *Shortlist    `json:"shortlist"`
	Matches     []*Match      `json:"matches"`
	Ranked      []RankedNanny `json:"ranked"`
	ReviewToken string        `json:"review_token"`
}

// ShortlistReview is a host's tokenized CV review page: each shortlist
// entry carries the nanny profile and the host's proceed-pass token for
// that match.
type ShortlistReview struct {
	Shortlist *Shortlist    `json:"shortlist"`
	Entries   []ReviewEntry `json:"entries"`
}

type ReviewEntry struct {
	Match            *Match          `json:"match"`
	Nanny            *profiles.Nanny `json:"nanny"`
	ProceedPassToken string          `json:"proceed_pass_token"`
}

type Service interface {
	EligibleNannies(ctx context.Context, hostID string, opts EngineOptions) ([]RankedNanny, error)
	CreateShortlistForHost(ctx context.Context, hostID string) (*ShortlistResult, error)
	ReviewShortlist(ctx context.Context, tokenString string) (*ShortlistReview, error)
	ProceedPass(ctx context.Context, tokenString string, choice Decision) (*Match, error)
	GetMatch(ctx context.Context, matchID string) (*Match, error)
	CreateManualMatch(ctx context.Context, hostID, nannyID string) (*Match, error)
	OverrideMatchScore(ctx context.Context, matchID string, total float64) (*Match, error)
}

// ServiceConfig carries the tunables the engine and shortlist generator
// run with.
type ServiceConfig struct {
	MinScore      float64
	ShortlistSize int
	MaxCandidates int
	BaseURL       string
}

type service struct {
	repo          Repository
	conversations ConversationService
	notifier      Notifier
	tokenIssuer   *tokens.Issuer
	cfg           ServiceConfig
}

func NewService(repo Repository, conversations ConversationService, notifier Notifier, tokenIssuer *tokens.Issuer, cfg ServiceConfig) Service {
	if cfg.MinScore == 0 {
		cfg.MinScore = DefaultMinScore
	}
	if cfg.ShortlistSize == 0 {
		cfg.ShortlistSize = 10
	}
	if cfg.MaxCandidates == 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	return &service{
		repo:          repo,
		conversations: conversations,
		notifier:      notifier,
		tokenIssuer:   tokenIssuer,
		cfg:           cfg,
	}
}

// EligibleNannies resolves the host, assembles its tier pool, then
// filters, scores, sorts and truncates.
func (s *service) EligibleNannies(ctx context.Context, hostID string, opts EngineOptions) ([]RankedNanny, error) {
	host, err := s.repo.GetHost(ctx, hostID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.candidatePool(ctx, host)
	if err != nil {
		return nil, err
	}

	ranked := RankCandidates(host, candidates, opts)
	for _, r := range ranked {
		RecordMatchScore(r.Score.Total)
	}
	return ranked, nil
}

// CreateShortlistForHost runs the engine with the shortlist settings,
// persists one pending Match per surviving candidate and one Shortlist
// referencing them all, then emails the host a CV review link. Fails
// fast if the host record does not exist so no partial shortlist is
// created.
func (s *service) CreateShortlistForHost(ctx context.Context, hostID string) (*ShortlistResult, error) {
	host, err := s.repo.GetHost(ctx, hostID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.candidatePool(ctx, host)
	if err != nil {
		return nil, err
	}

	ranked := RankCandidates(host, candidates, EngineOptions{
		MinScore:      s.cfg.MinScore,
		MaxCandidates: s.cfg.ShortlistSize,
	})

	matches := make([]*Match, 0, len(ranked))
	matchIDs := make([]string, 0, len(ranked))
	for _, candidate := range ranked {
		match := &Match{
			HostID:  host.ID,
			NannyID: candidate.Nanny.ID,
			Score:   candidate.Score,
			Status:  StatusPending,
		}
		if err := s.repo.CreateMatch(ctx, match); err != nil {
			return nil, err
		}
		RecordMatchCreated()
		RecordMatchScore(candidate.Score.Total)
		matches = append(matches, match)
		matchIDs = append(matchIDs, match.ID)
	}

	shortlist := &Shortlist{
		HostID:   host.ID,
		MatchIDs: matchIDs,
	}
	if err := s.repo.CreateShortlist(ctx, shortlist); err != nil {
		return nil, err
	}
	RecordShortlistGenerated(len(matchIDs))

	reviewToken, err := s.tokenIssuer.GenerateCVReviewToken(host.ID, shortlist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate review token: %w", err)
	}

	if s.notifier != nil {
		reviewURL := fmt.Sprintf("%s/shortlists/%s/review?token=%s", s.cfg.BaseURL, shortlist.ID, reviewToken)
		s.notifier.ShortlistReady(ctx, host, reviewURL)
	}

	return &ShortlistResult{
		Shortlist:   shortlist,
		Matches:     matches,
		Ranked:      ranked,
		ReviewToken: reviewToken,
	}, nil
}

// ReviewShortlist resolves a CV review link into the shortlist's
// entries. Each entry includes the host's proceed-pass token for that
// match, so the review page can submit decisions directly.
func (s *service) ReviewShortlist(ctx context.Context, tokenString string) (*ShortlistReview, error) {
	claims, err := s.tokenIssuer.ValidateTokenOfType(tokenString, tokens.TypeCVReview)
	if err != nil {
		return nil, err
	}

	shortlist, err := s.repo.GetShortlist(ctx, claims.ShortlistID)
	if err != nil {
		return nil, err
	}

	entries := make([]ReviewEntry, 0, len(shortlist.MatchIDs))
	for _, matchID := range shortlist.MatchIDs {
		match, err := s.repo.GetMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		nanny, err := s.repo.GetNanny(ctx, match.NannyID)
		if err != nil {
			return nil, err
		}
		proceedToken, err := s.tokenIssuer.GenerateProceedPassToken(match.ID, tokens.RoleHost)
		if err != nil {
			return nil, fmt.Errorf("failed to generate decision token: %w", err)
		}
		entries = append(entries, ReviewEntry{
			Match:            match,
			Nanny:            nanny,
			ProceedPassToken: proceedToken,
		})
	}

	return &ShortlistReview{Shortlist: shortlist, Entries: entries}, nil
}

// ProceedPass applies one party's decision, authorized by a proceed-pass
// link token. On the transition to proceeded it creates the match
// conversation (idempotent) and notifies both parties.
func (s *service) ProceedPass(ctx context.Context, tokenString string, choice Decision) (*Match, error) {
	if choice != DecisionProceed && choice != DecisionPass {
		return nil, ErrInvalidChoice
	}

	claims, err := s.tokenIssuer.ValidateTokenOfType(tokenString, tokens.TypeProceedPass)
	if err != nil {
		return nil, err
	}

	match, err := s.repo.GetMatch(ctx, claims.MatchID)
	if err != nil {
		return nil, err
	}

	party := PartyHost
	if claims.Role == tokens.RoleNanny {
		party = PartyNanny
	}

	changed, nowProceeded, err := ApplyDecision(match, party, choice, time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return match, nil
	}

	if err := s.repo.UpdateMatchDecision(ctx, match); err != nil {
		return nil, err
	}
	RecordDecision(string(party), string(choice))

	if nowProceeded {
		conversationID, _, err := s.conversations.EnsureForMatch(ctx, match.ID, match.HostID, match.NannyID)
		if err != nil {
			return nil, fmt.Errorf("failed to create match conversation: %w", err)
		}
		s.notifyProceeded(ctx, match, conversationID)
	} else if choice == DecisionProceed {
		// One side in, the other side's turn.
		other := PartyNanny
		if party == PartyNanny {
			other = PartyHost
		}
		s.notifyDecisionRequested(ctx, match, other)
	}

	return match, nil
}

func (s *service) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	return s.repo.GetMatch(ctx, matchID)
}

// CreateManualMatch lets a matchmaker pair a host and nanny outside the
// automated shortlist flow. The engine score is still computed and
// recorded; must-match filters are advisory here, the matchmaker call
// is authoritative.
func (s *service) CreateManualMatch(ctx context.Context, hostID, nannyID string) (*Match, error) {
	host, err := s.repo.GetHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	nanny, err := s.repo.GetNanny(ctx, nannyID)
	if err != nil {
		return nil, err
	}

	match := &Match{
		HostID:  host.ID,
		NannyID: nanny.ID,
		Score:   ComputeMatchScore(host, nanny),
		Status:  StatusPending,
	}
	if err := s.repo.CreateMatch(ctx, match); err != nil {
		return nil, err
	}
	RecordMatchCreated()
	return match, nil
}

// OverrideMatchScore lets a matchmaker overwrite the engine's total for
// a match. Component scores keep their engine values.
func (s *service) OverrideMatchScore(ctx context.Context, matchID string, total float64) (*Match, error) {
	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	match.Score.Total = clamp(total, 0, 100)
	if err := s.repo.UpdateMatchScore(ctx, matchID, match.Score); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *service) candidatePool(ctx context.Context, host *profiles.Host) ([]*profiles.Nanny, error) {
	var pool []*profiles.Nanny
	for _, badge := range PoolBadges(host.Tier) {
		nannies, err := s.repo.ListNanniesByBadge(ctx, badge, s.cfg.MaxCandidates)
		if err != nil {
			return nil, err
		}
		pool = append(pool, nannies...)
	}
	return pool, nil
}

func (s *service) notifyDecisionRequested(ctx context.Context, match *Match, awaiting Party) {
	if s.notifier == nil {
		return
	}
	host, err := s.repo.GetHost(ctx, match.HostID)
	if err != nil {
		log.Printf("decision notification skipped, host fetch failed: %v", err)
		return
	}
	nanny, err := s.repo.GetNanny(ctx, match.NannyID)
	if err != nil {
		log.Printf("decision notification skipped, nanny fetch failed: %v", err)
		return
	}

	role := tokens.RoleNanny
	if awaiting == PartyHost {
		role = tokens.RoleHost
	}
	token, err := s.tokenIssuer.GenerateProceedPassToken(match.ID, role)
	if err != nil {
		log.Printf("decision notification skipped, token generation failed: %v", err)
		return
	}
	decideURL := fmt.Sprintf("%s/matches/decide?token=%s", s.cfg.BaseURL, token)
	s.notifier.DecisionRequested(ctx, host, nanny, role, decideURL)
}

func (s *service) notifyProceeded(ctx context.Context, match *Match, conversationID string) {
	if s.notifier == nil {
		return
	}
	host, err := s.repo.GetHost(ctx, match.HostID)
	if err != nil {
		log.Printf("proceed notification skipped, host fetch failed: %v", err)
		return
	}
	nanny, err := s.repo.GetNanny(ctx, match.NannyID)
	if err != nil {
		log.Printf("proceed notification skipped, nanny fetch failed: %v", err)
		return
	}
	s.notifier.MatchProceeded(ctx, host, nanny, conversationID)
}
