// internal/matching/scoring.go
// Weighted multi-factor match scoring. Pure functions: callers are
// expected to have already applied the must-match filters; scoring
// does not re-check them.

package matching

import (
	"strings"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
)

// Component maxima. Total is bounded 0-100.
const (
	MaxCoreScore   = 40.0
	MaxSkillsScore = 20.0
	MaxValuesScore = 20.0
	MaxBonusScore  = 20.0
)

// Core component weights
const (
	locationExactPoints   = 10.0
	locationPartialPoints = 7.0
	startDatePoints       = 5.0
	accommodationPoints   = 5.0
	daysOverlapMaxPoints  = 10.0
	ageGroupsMaxPoints    = 10.0
)

// Values component weights
const (
	valueExactMatchPoints   = 5.0
	valueBothPresentPoints  = 2.0
	smokingConflictPenalty  = -5.0
	smokingCompatiblePoints = 5.0
)

// Bonus component weights
const (
	languageBonusPoints   = 10.0
	salaryPresencePoints  = 5.0
	certifiedBadgePoints  = 5.0
	verifiedBadgePoints   = 3.0
)

// MatchScore is the scored breakdown for one host/nanny pair.
type MatchScore struct {
	Total  float64 `json:"total"`
	Core   float64 `json:"core"`
	Skills float64 `json:"skills"`
	Values float64 `json:"values"`
	Bonus  float64 `json:"bonus"`
}

// ComputeMatchScore scores a nanny against a host's stated requirements.
// All components are clamped to their documented maxima; components are
// additive and independently computed (a location mismatch does not zero
// out date compatibility).
func ComputeMatchScore(host *profiles.Host, nanny *profiles.Nanny) MatchScore {
	score := MatchScore{
		Core:   coreScore(host, nanny),
		Skills: skillsScore(host, nanny),
		Values: valuesScore(host, nanny),
		Bonus:  bonusScore(host, nanny),
	}
	score.Total = score.Core + score.Skills + score.Values + score.Bonus
	return score
}

// coreScore covers location, start date, accommodation, day overlap and
// age-group coverage. Max 40.
func coreScore(host *profiles.Host, nanny *profiles.Nanny) float64 {
	score := 0.0

	// Location: exact match 10, partial (substring) 7
	hostLocations := nonEmpty(host.Location, host.JobLocation, host.Country)
	nannyLocations := nonEmpty(nanny.Location, nanny.CurrentLocation, nanny.Country)
	if exact, partial := locationMatchKind(hostLocations, nannyLocations); exact {
		score += locationExactPoints
	} else if partial {
		score += locationPartialPoints
	}

	// Start date compatibility: 5 when both dates parse and the nanny
	// is available on or before the desired date
	if desired, ok := parseDate(host.DesiredStartDate); ok {
		if available, ok := parseDate(nanny.AvailableStartDate); ok && !available.After(desired) {
			score += startDatePoints
		}
	}

	// Accommodation compatibility: 5 when both sides declare and agree
	// (an "Either" on either side counts as agreement)
	if host.Accommodation != "" && nanny.AccommodationPreference != "" &&
		accommodationCompatible(host.Accommodation, nanny.AccommodationPreference) {
		score += accommodationPoints
	}

	// Day availability: up to 10, proportional to overlap/required
	if len(host.RequiredDays) > 0 {
		overlap := dayOverlapCount(host.RequiredDays, nanny.AvailableDays)
		score += daysOverlapMaxPoints * float64(overlap) / float64(len(host.RequiredDays))
	}

	// Age-group coverage: up to 10, proportional to matched/required
	if len(host.RequiredAgeGroups) > 0 {
		matched := 0
		for _, want := range host.RequiredAgeGroups {
			if anyContainsEitherWay(nanny.ExperienceAgeGroups, want) {
				matched++
			}
		}
		score += ageGroupsMaxPoints * float64(matched) / float64(len(host.RequiredAgeGroups))
	}

	return clamp(score, 0, MaxCoreScore)
}

// skillsScore covers the 5 tracked skill flags. A host that requires
// none of them scores the full 20, so an unexpressed preference is
// never penalized. Max 20.
func skillsScore(host *profiles.Host, nanny *profiles.Nanny) float64 {
	type skillPair struct {
		required bool
		offered  bool
	}
	pairs := []skillPair{
		{host.RequiresCooking, nanny.OffersCooking},
		{host.RequiresTutoring, nanny.OffersTutoring},
		{host.RequiresDriving, nanny.OffersDriving},
		{host.RequiresTravelAssistance, nanny.OffersTravelAssistance},
		{host.RequiresHousekeeping, nanny.OffersHousekeeping},
	}

	required, matched := 0, 0
	for _, p := range pairs {
		if !p.required {
			continue
		}
		required++
		if p.offered {
			matched++
		}
	}

	if required == 0 {
		return MaxSkillsScore
	}
	return clamp(MaxSkillsScore*float64(matched)/float64(required), 0, MaxSkillsScore)
}

// valuesScore covers parenting style, pets, smoking and religion.
// Clamped to [0, 20] because the smoking conflict penalty can
// otherwise drag the component negative.
func valuesScore(host *profiles.Host, nanny *profiles.Nanny) float64 {
	score := 0.0

	// Parenting style: exact +5, both declared but different +2
	if host.ParentingStyle != "" && nanny.ParentingStyle != "" {
		if equalFold(host.ParentingStyle, nanny.ParentingStyle) {
			score += valueExactMatchPoints
		} else {
			score += valueBothPresentPoints
		}
	}

	// Pet tolerance: exact match +5
	if host.PetPolicy != "" && nanny.PetTolerance != "" && equalFold(host.PetPolicy, nanny.PetTolerance) {
		score += valueExactMatchPoints
	}

	// Smoking: host requires no smoking and nanny smokes is a conflict;
	// a non-smoking nanny is compatible with any declared policy
	hostNoSmoking := equalFold(host.SmokingPolicy, "No Smoking")
	if hostNoSmoking && nanny.Smokes {
		score += smokingConflictPenalty
	} else if !nanny.Smokes && host.SmokingPolicy != "" {
		score += smokingCompatiblePoints
	}

	// Religious belief: exact +5, both declared but different +2
	if host.ReligiousBelief != "" && nanny.ReligiousBelief != "" {
		if equalFold(host.ReligiousBelief, nanny.ReligiousBelief) {
			score += valueExactMatchPoints
		} else {
			score += valueBothPresentPoints
		}
	}

	return clamp(score, 0, MaxValuesScore)
}

// bonusScore covers language, salary presence and badge. Max 20.
func bonusScore(host *profiles.Host, nanny *profiles.Nanny) float64 {
	score := 0.0

	// Primary language found anywhere in the nanny's language skills text
	if host.PrimaryLanguage != "" &&
		strings.Contains(strings.ToLower(nanny.LanguageSkills), strings.ToLower(strings.TrimSpace(host.PrimaryLanguage))) {
		score += languageBonusPoints
	}

	// Salary alignment: presence check only.
	// TODO: compare the actual ranges numerically once salary fields are
	// normalized to structured min/max values in the store.
	if host.SalaryRange != "" && nanny.ExpectedSalary != "" {
		score += salaryPresencePoints
	}

	switch nanny.Badge {
	case profiles.BadgeCertified:
		score += certifiedBadgePoints
	case profiles.BadgeVerified:
		score += verifiedBadgePoints
	}

	return clamp(score, 0, MaxBonusScore)
}

// locationMatchKind reports whether any host/nanny location pair matches
// exactly, and failing that whether any pair matches as a substring.
func locationMatchKind(hostLocations, nannyLocations []string) (exact, partial bool) {
	for _, h := range hostLocations {
		for _, n := range nannyLocations {
			if equalFold(h, n) {
				return true, true
			}
			if containsEitherWay(h, n) {
				partial = true
			}
		}
	}
	return false, partial
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
