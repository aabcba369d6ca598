// internal/matching/filters.go
// Must-match filters: the boolean gate applied before any scoring.
// Filters are deliberately permissive on missing data so an incomplete
// onboarding never starves the match pool, but strict on explicit
// mismatches and the special-needs safety requirement.

package matching

import (
	"strings"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
)

const accommodationEither = "either"

// Layouts tried when parsing profile date fields. Records arrive from
// free-form onboarding so both date-only and full timestamps show up.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// PassesMustMatchFilters reports whether a nanny clears every hard
// requirement of a host. Pure and total: missing data on either side is
// treated as "no requirement", never as a failure.
func PassesMustMatchFilters(host *profiles.Host, nanny *profiles.Nanny) bool {
	return locationCompatible(host, nanny) &&
		startDateCompatible(host.DesiredStartDate, nanny.AvailableStartDate) &&
		accommodationCompatible(host.Accommodation, nanny.AccommodationPreference) &&
		availabilityOverlaps(host.RequiredDays, nanny.AvailableDays) &&
		ageGroupsCovered(host.RequiredAgeGroups, nanny.ExperienceAgeGroups) &&
		specialNeedsSatisfied(host.SpecialNeedsRequired, nanny.SpecialNeedsExperience)
}

// locationCompatible passes on a case-insensitive substring match in
// either direction between any host location field and any nanny
// location field. Vacuously true when either side has no location data.
func locationCompatible(host *profiles.Host, nanny *profiles.Nanny) bool {
	hostLocations := nonEmpty(host.Location, host.JobLocation, host.Country)
	nannyLocations := nonEmpty(nanny.Location, nanny.CurrentLocation, nanny.Country)

	if len(hostLocations) == 0 || len(nannyLocations) == 0 {
		return true
	}

	for _, h := range hostLocations {
		for _, n := range nannyLocations {
			if containsEitherWay(h, n) {
				return true
			}
		}
	}
	return false
}

// startDateCompatible passes if the nanny can start on or before the
// host's desired date. A missing or unparseable date on either side
// passes; a parse failure must not block a match.
func startDateCompatible(hostDate, nannyDate string) bool {
	desired, ok := parseDate(hostDate)
	if !ok {
		return true
	}
	available, ok := parseDate(nannyDate)
	if !ok {
		return true
	}
	return !available.After(desired)
}

// accommodationCompatible passes when either side declares "Either",
// when preferences match exactly, or when either side has no preference.
func accommodationCompatible(hostPref, nannyPref string) bool {
	h := strings.ToLower(strings.TrimSpace(hostPref))
	n := strings.ToLower(strings.TrimSpace(nannyPref))

	if h == "" || n == "" {
		return true
	}
	if h == accommodationEither || n == accommodationEither {
		return true
	}
	return h == n
}

// availabilityOverlaps passes when the host's required days and the
// nanny's available days share at least one day, or either list is empty.
func availabilityOverlaps(required, available []string) bool {
	if len(required) == 0 || len(available) == 0 {
		return true
	}
	return dayOverlapCount(required, available) > 0
}

// ageGroupsCovered requires ALL of the host's age groups to be covered
// by the nanny's experience (substring match either direction). A nanny
// with no declared groups fails when the host requires any.
func ageGroupsCovered(required, experience []string) bool {
	if len(required) == 0 {
		return true
	}
	if len(experience) == 0 {
		return false
	}
	for _, want := range required {
		if !anyContainsEitherWay(experience, want) {
			return false
		}
	}
	return true
}

// specialNeedsSatisfied is the one non-negotiable filter: a host that
// requires special-needs care only matches nannies declaring that
// experience.
func specialNeedsSatisfied(required, experienced bool) bool {
	if !required {
		return true
	}
	return experienced
}

// Helpers shared with scoring.

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}

func containsEitherWay(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

func anyContainsEitherWay(haystack []string, want string) bool {
	for _, have := range haystack {
		if containsEitherWay(have, want) {
			return true
		}
	}
	return false
}

func dayOverlapCount(required, available []string) int {
	availableSet := make(map[string]bool, len(available))
	for _, day := range available {
		availableSet[strings.ToLower(strings.TrimSpace(day))] = true
	}
	count := 0
	for _, day := range required {
		if availableSet[strings.ToLower(strings.TrimSpace(day))] {
			count++
		}
	}
	return count
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
