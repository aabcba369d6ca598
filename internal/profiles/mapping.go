// internal/profiles/mapping.go
// The adapter between raw Airtable records and typed profiles. The
// matching, interview and messaging layers only ever see the typed
// structs; nothing downstream touches a raw field map.

package profiles

import (
	"github.com/hellonanny/hellonanny-backend/internal/airtable"
)

// Airtable table names
const (
	TableHosts   = "Hosts"
	TableNannies = "Nannies"
)

// HostFromRecord maps a raw Hosts row into a typed Host.
func HostFromRecord(record *airtable.Record) *Host {
	f := record.Fields
	return &Host{
		ID:         record.ID,
		FamilyName: airtable.StringField(f, "Family Name"),
		Email:      airtable.StringField(f, "Email"),
		Phone:      airtable.StringField(f, "Phone"),

		Location:      airtable.StringField(f, "Location"),
		JobLocation:   airtable.StringField(f, "Job Location"),
		Country:       airtable.StringField(f, "Country"),
		Accommodation: airtable.StringField(f, "Accommodation"),

		DesiredStartDate:     airtable.StringField(f, "Desired Start Date"),
		RequiredDays:         airtable.StringSliceField(f, "Required Days"),
		RequiredAgeGroups:    airtable.StringSliceField(f, "Required Age Groups"),
		SpecialNeedsRequired: airtable.BoolField(f, "Special Needs Required"),

		RequiresCooking:          airtable.BoolField(f, "Requires Cooking"),
		RequiresTutoring:         airtable.BoolField(f, "Requires Tutoring"),
		RequiresDriving:          airtable.BoolField(f, "Requires Driving"),
		RequiresTravelAssistance: airtable.BoolField(f, "Requires Travel Assistance"),
		RequiresHousekeeping:     airtable.BoolField(f, "Requires Housekeeping"),

		ParentingStyle:  airtable.StringField(f, "Parenting Style"),
		PetPolicy:       airtable.StringField(f, "Pet Policy"),
		SmokingPolicy:   airtable.StringField(f, "Smoking Policy"),
		ReligiousBelief: airtable.StringField(f, "Religious Belief"),
		PrimaryLanguage: airtable.StringField(f, "Primary Language"),
		SalaryRange:     airtable.StringField(f, "Salary Range"),

		Tier:      HostTier(airtable.StringField(f, "Tier")),
		CreatedAt: record.CreatedTime,
	}
}

// NannyFromRecord maps a raw Nannies row into a typed Nanny.
func NannyFromRecord(record *airtable.Record) *Nanny {
	f := record.Fields
	return &Nanny{
		ID:       record.ID,
		FullName: airtable.StringField(f, "Full Name"),
		Email:    airtable.StringField(f, "Email"),
		Phone:    airtable.StringField(f, "Phone"),

		Location:                airtable.StringField(f, "Location"),
		CurrentLocation:         airtable.StringField(f, "Current Location"),
		Country:                 airtable.StringField(f, "Country"),
		AccommodationPreference: airtable.StringField(f, "Accommodation Preference"),

		AvailableStartDate:     airtable.StringField(f, "Available Start Date"),
		AvailableDays:          airtable.StringSliceField(f, "Available Days"),
		ExperienceAgeGroups:    airtable.StringSliceField(f, "Experience Age Groups"),
		SpecialNeedsExperience: airtable.BoolField(f, "Special Needs Experience"),

		OffersCooking:          airtable.BoolField(f, "Offers Cooking"),
		OffersTutoring:         airtable.BoolField(f, "Offers Tutoring"),
		OffersDriving:          airtable.BoolField(f, "Offers Driving"),
		OffersTravelAssistance: airtable.BoolField(f, "Offers Travel Assistance"),
		OffersHousekeeping:     airtable.BoolField(f, "Offers Housekeeping"),

		ParentingStyle:  airtable.StringField(f, "Parenting Style"),
		PetTolerance:    airtable.StringField(f, "Pet Tolerance"),
		Smokes:          airtable.BoolField(f, "Smokes"),
		ReligiousBelief: airtable.StringField(f, "Religious Belief"),
		LanguageSkills:  airtable.StringField(f, "Language Skills"),
		ExpectedSalary:  airtable.StringField(f, "Expected Salary"),

		Badge:     NannyBadge(airtable.StringField(f, "Badge")),
		CVURL:     airtable.StringField(f, "CV URL"),
		CreatedAt: record.CreatedTime,
	}
}
