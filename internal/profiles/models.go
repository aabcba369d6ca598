// internal/profiles/models.go

package profiles

import "time"

// HostTier controls candidate pool breadth and speed of service.
type HostTier string

const (
	TierStandard  HostTier = "Standard"
	TierFastTrack HostTier = "Fast Track"
	TierVIP       HostTier = "VIP"
)

// NannyBadge is both a bonus-score factor and a pool-membership gate.
type NannyBadge string

const (
	BadgeBasic     NannyBadge = "Basic"
	BadgeVerified  NannyBadge = "Verified"
	BadgeCertified NannyBadge = "Certified"
)

// BadgePriority orders badges for ranking tie-breaks.
// Certified > Verified > Basic > unset.
func BadgePriority(b NannyBadge) int {
	switch b {
	case BadgeCertified:
		return 3
	case BadgeVerified:
		return 2
	case BadgeBasic:
		return 1
	default:
		return 0
	}
}

// Host is a family profile. Date fields are kept as the raw strings the
// store hands back; the matching filters parse them defensively so a
// malformed date never blocks a match.
type Host struct {
	ID         string `json:"id"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`

	// Location & accommodation
	Location      string `json:"location"`
	JobLocation   string `json:"job_location"`
	Country       string `json:"country"`
	Accommodation string `json:"accommodation"` // "Live-in", "Live-out", "Either"

	// Schedule & care requirements
	DesiredStartDate     string   `json:"desired_start_date"`
	RequiredDays         []string `json:"required_days"`
	RequiredAgeGroups    []string `json:"required_age_groups"`
	SpecialNeedsRequired bool     `json:"special_needs_required"`

	// Skill expectations
	RequiresCooking          bool `json:"requires_cooking"`
	RequiresTutoring         bool `json:"requires_tutoring"`
	RequiresDriving          bool `json:"requires_driving"`
	RequiresTravelAssistance bool `json:"requires_travel_assistance"`
	RequiresHousekeeping     bool `json:"requires_housekeeping"`

	// Values & lifestyle
	ParentingStyle  string `json:"parenting_style"`
	PetPolicy       string `json:"pet_policy"`
	SmokingPolicy   string `json:"smoking_policy"`
	ReligiousBelief string `json:"religious_belief"`
	PrimaryLanguage string `json:"primary_language"`
	SalaryRange     string `json:"salary_range"`

	Tier      HostTier  `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

// Nanny is a caregiver profile.
type Nanny struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`

	// Location & accommodation
	Location                string `json:"location"`
	CurrentLocation         string `json:"current_location"`
	Country                 string `json:"country"`
	AccommodationPreference string `json:"accommodation_preference"`

	// Availability & experience
	AvailableStartDate     string   `json:"available_start_date"`
	AvailableDays          []string `json:"available_days"`
	ExperienceAgeGroups    []string `json:"experience_age_groups"`
	SpecialNeedsExperience bool     `json:"special_needs_experience"`

	// Offered skills
	OffersCooking          bool `json:"offers_cooking"`
	OffersTutoring         bool `json:"offers_tutoring"`
	OffersDriving          bool `json:"offers_driving"`
	OffersTravelAssistance bool `json:"offers_travel_assistance"`
	OffersHousekeeping     bool `json:"offers_housekeeping"`

	// Values & lifestyle
	ParentingStyle  string `json:"parenting_style"`
	PetTolerance    string `json:"pet_tolerance"`
	Smokes          bool   `json:"smokes"`
	ReligiousBelief string `json:"religious_belief"`
	LanguageSkills  string `json:"language_skills"`
	ExpectedSalary  string `json:"expected_salary"`

	Badge     NannyBadge `json:"badge"`
	CVURL     string     `json:"cv_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
