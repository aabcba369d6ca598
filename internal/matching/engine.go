// internal/matching/engine.go
// Ranking and selection: candidate pool by host tier, must-match
// filters, scoring, minimum-score cutoff, sort, truncate.

package matching

import (
	"sort"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
)

// Engine defaults. Shortlist generation overrides MaxCandidates with
// the configured shortlist size.
const (
	DefaultMinScore      = 60.0
	DefaultMaxCandidates = 100
)

// EngineOptions narrow an eligibility run.
type EngineOptions struct {
	MinScore      float64
	MaxCandidates int
}

func (o EngineOptions) withDefaults() EngineOptions {
	if o.MinScore == 0 {
		o.MinScore = DefaultMinScore
	}
	if o.MaxCandidates == 0 {
		o.MaxCandidates = DefaultMaxCandidates
	}
	return o
}

// PoolBadges returns the badge pool a host tier may draw candidates
// from, in pool-assembly priority order. VIP hosts see certified
// nannies; everyone else is gated to Verified and Basic.
func PoolBadges(tier profiles.HostTier) []profiles.NannyBadge {
	if tier == profiles.TierVIP {
		return []profiles.NannyBadge{profiles.BadgeCertified, profiles.BadgeVerified, profiles.BadgeBasic}
	}
	return []profiles.NannyBadge{profiles.BadgeVerified, profiles.BadgeBasic}
}

// RankCandidates filters, scores, sorts and truncates a candidate pool
// against one host. Pure: the candidate slice is not mutated.
func RankCandidates(host *profiles.Host, candidates []*profiles.Nanny, opts EngineOptions) []RankedNanny {
	opts = opts.withDefaults()

	ranked := make([]RankedNanny, 0, len(candidates))
	for _, nanny := range candidates {
		if !PassesMustMatchFilters(host, nanny) {
			continue
		}
		score := ComputeMatchScore(host, nanny)
		if score.Total < opts.MinScore {
			continue
		}
		ranked = append(ranked, RankedNanny{Nanny: nanny, Score: score})
	}

	// Descending by total; ties broken by badge priority
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score.Total != ranked[j].Score.Total {
			return ranked[i].Score.Total > ranked[j].Score.Total
		}
		return profiles.BadgePriority(ranked[i].Nanny.Badge) > profiles.BadgePriority(ranked[j].Nanny.Badge)
	})

	if len(ranked) > opts.MaxCandidates {
		ranked = ranked[:opts.MaxCandidates]
	}
	return ranked
}
