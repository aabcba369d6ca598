// internal/profiles/dto.go
// Onboarding DTOs. Onboarding happens in segments: the client saves one
// themed chunk at a time, so every segment maps to a partial field
// update. Each DTO knows how to express itself as store fields.

package profiles

// Host segments

type HostBasicInfo struct {
	FamilyName string `json:"family_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Tier       string `json:"tier" validate:"omitempty,oneof=Standard 'Fast Track' VIP"`
}

func (d HostBasicInfo) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"Family Name": d.FamilyName,
		"Email":       d.Email,
	}
	if d.Phone != "" {
		fields["Phone"] = d.Phone
	}
	if d.Tier != "" {
		fields["Tier"] = d.Tier
	}
	return fields
}

type HostCareNeeds struct {
	Location             string   `json:"location" validate:"omitempty,max=200"`
	JobLocation          string   `json:"job_location" validate:"omitempty,max=200"`
	Country              string   `json:"country" validate:"omitempty,max=100"`
	Accommodation        string   `json:"accommodation" validate:"omitempty,oneof=Live-in Live-out Either"`
	DesiredStartDate     string   `json:"desired_start_date" validate:"omitempty,max=30"`
	RequiredDays         []string `json:"required_days" validate:"omitempty,max=7"`
	RequiredAgeGroups    []string `json:"required_age_groups" validate:"omitempty,max=6"`
	SpecialNeedsRequired bool     `json:"special_needs_required"`
}

func (d HostCareNeeds) Fields() map[string]interface{} {
	return map[string]interface{}{
		"Location":               d.Location,
		"Job Location":           d.JobLocation,
		"Country":                d.Country,
		"Accommodation":          d.Accommodation,
		"Desired Start Date":     d.DesiredStartDate,
		"Required Days":          d.RequiredDays,
		"Required Age Groups":    d.RequiredAgeGroups,
		"Special Needs Required": d.SpecialNeedsRequired,
	}
}

type HostSkillNeeds struct {
	RequiresCooking          bool `json:"requires_cooking"`
	RequiresTutoring         bool `json:"requires_tutoring"`
	RequiresDriving          bool `json:"requires_driving"`
	RequiresTravelAssistance bool `json:"requires_travel_assistance"`
	RequiresHousekeeping     bool `json:"requires_housekeeping"`
}

func (d HostSkillNeeds) Fields() map[string]interface{} {
	return map[string]interface{}{
		"Requires Cooking":           d.RequiresCooking,
		"Requires Tutoring":          d.RequiresTutoring,
		"Requires Driving":           d.RequiresDriving,
		"Requires Travel Assistance": d.RequiresTravelAssistance,
		"Requires Housekeeping":      d.RequiresHousekeeping,
	}
}

type HostValues struct {
	ParentingStyle  string `json:"parenting_style" validate:"omitempty,max=100"`
	PetPolicy       string `json:"pet_policy" validate:"omitempty,max=100"`
	SmokingPolicy   string `json:"smoking_policy" validate:"omitempty,max=100"`
	ReligiousBelief string `json:"religious_belief" validate:"omitempty,max=100"`
	PrimaryLanguage string `json:"primary_language" validate:"omitempty,max=100"`
	SalaryRange     string `json:"salary_range" validate:"omitempty,max=100"`
}

func (d HostValues) Fields() map[string]interface{} {
	return map[string]interface{}{
		"Parenting Style":  d.ParentingStyle,
		"Pet Policy":       d.PetPolicy,
		"Smoking Policy":   d.SmokingPolicy,
		"Religious Belief": d.ReligiousBelief,
		"Primary Language": d.PrimaryLanguage,
		"Salary Range":     d.SalaryRange,
	}
}

// Nanny segments

type NannyBasicInfo struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

func (d NannyBasicInfo) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"Full Name": d.FullName,
		"Email":     d.Email,
	}
	if d.Phone != "" {
		fields["Phone"] = d.Phone
	}
	return fields
}

type NannyAvailability struct {
	Location                string   `json:"location" validate:"omitempty,max=200"`
	CurrentLocation         string   `json:"current_location" validate:"omitempty,max=200"`
	Country                 string   `json:"country" validate:"omitempty,max=100"`
	AccommodationPreference string   `json:"accommodation_preference" validate:"omitempty,oneof=Live-in Live-out Either"`
	AvailableStartDate      string   `json:"available_start_date" validate:"omitempty,max=30"`
	AvailableDays           []string `json:"available_days" validate:"omitempty,max=7"`
}

func (d NannyAvailability) Fields() map[string]interface{} {
	return map[string]interface{}{
		"Location":                 d.Location,
		"Current Location":         d.CurrentLocation,
		"Country":                  d.Country,
		"Accommodation Preference": d.AccommodationPreference,
		"Available Start Date":     d.AvailableStartDate,
		"Available Days":           d.AvailableDays,
	}
}

type NannyExperience struct {
	ExperienceAgeGroups    []string `json:"experience_age_groups" validate:"omitempty,max=6"`
	SpecialNeedsExperience bool     `json:"special_needs_experience"`
	OffersCooking          bool     `json:"offers_cooking"`
	OffersTutoring         bool     `json:"offers_tutoring"`
	OffersDriving          bool     `json:"offers_driving"`
	OffersTravelAssistance bool     `json:"offers_travel_assistance"`
	OffersHousekeeping     bool     `json:"offers_housekeeping"`
}

func (d NannyExperience) Fields() map[string]interface{} {
	return map[string]interface{}{
		"Experience Age Groups":    d.ExperienceAgeGroups,
		"Special Needs Experience": d.SpecialNeedsExperience,
		"Offers Cooking":           d.OffersCooking,
		"Offers Tutoring":          d.OffersTutoring,
		"Offers Driving":           d.OffersDriving,
		"Offers Travel Assistance": d.OffersTravelAssistance,
		"Offers Housekeeping":      d.OffersHousekeeping,
	}
}

type NannyValues struct {
	ParentingStyle  string `json:"parenting_style" validate:"omitempty,max=100"`
	PetTolerance    string `json:"pet_tolerance" validate:"omitempty,max=100"`
	Smokes          bool   `json:"smokes"`
	ReligiousBelief string `json:"religious_belief" validate:"omitempty,max=100"`
	LanguageSkills  string `json:"language_skills" validate:"omitempty,max=300"`
	ExpectedSalary  string `json:"expected_salary" validate:"omitempty,max=100"`
}

func (d NannyValues) Fields() map[string]interface{} {
	return map[string]interface{}{
		"Parenting Style":  d.ParentingStyle,
		"Pet Tolerance":    d.PetTolerance,
		"Smokes":           d.Smokes,
		"Religious Belief": d.ReligiousBelief,
		"Language Skills":  d.LanguageSkills,
		"Expected Salary":  d.ExpectedSalary,
	}
}
