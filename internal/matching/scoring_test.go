// internal/matching/scoring_test.go

package matching

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
)

func perfectPair() (*profiles.Host, *profiles.Nanny) {
	host := &profiles.Host{
		Location:                 "Lagos",
		Accommodation:            "Live-in",
		DesiredStartDate:         "2026-10-01",
		RequiredDays:             []string{"Monday", "Wednesday"},
		RequiredAgeGroups:        []string{"Toddler"},
		RequiresCooking:          true,
		RequiresDriving:          true,
		ParentingStyle:           "Gentle",
		PetPolicy:                "No Pets",
		SmokingPolicy:            "No Smoking",
		ReligiousBelief:          "Christian",
		PrimaryLanguage:          "English",
		SalaryRange:              "150000-200000",
	}
	nanny := &profiles.Nanny{
		Location:                "Lagos",
		AccommodationPreference: "Live-in",
		AvailableStartDate:      "2026-09-01",
		AvailableDays:           []string{"Monday", "Wednesday", "Friday"},
		ExperienceAgeGroups:     []string{"Toddler"},
		OffersCooking:           true,
		OffersDriving:           true,
		ParentingStyle:          "Gentle",
		PetTolerance:            "No Pets",
		Smokes:                  false,
		ReligiousBelief:         "Christian",
		LanguageSkills:          "English, Yoruba",
		ExpectedSalary:          "180000",
		Badge:                   profiles.BadgeCertified,
	}
	return host, nanny
}

func TestComputeMatchScore(t *testing.T) {
	Convey("Given a perfectly aligned host and nanny", t, func() {
		host, nanny := perfectPair()
		score := ComputeMatchScore(host, nanny)

		Convey("Every component is at its maximum", func() {
			So(score.Core, ShouldEqual, MaxCoreScore)
			So(score.Skills, ShouldEqual, MaxSkillsScore)
			So(score.Values, ShouldEqual, MaxValuesScore)
			So(score.Bonus, ShouldEqual, MaxBonusScore)
			So(score.Total, ShouldEqual, 100.0)
		})
	})

	Convey("Given two empty profiles", t, func() {
		score := ComputeMatchScore(&profiles.Host{}, &profiles.Nanny{})

		Convey("Only the skills component scores, vacuously", func() {
			So(score.Core, ShouldEqual, 0.0)
			So(score.Skills, ShouldEqual, MaxSkillsScore)
			So(score.Values, ShouldEqual, 0.0)
			So(score.Bonus, ShouldEqual, 0.0)
			So(score.Total, ShouldEqual, MaxSkillsScore)
		})
	})

	Convey("The total always stays within 0 and 100", t, func() {
		host, nanny := perfectPair()
		nanny.Smokes = true

		score := ComputeMatchScore(host, nanny)
		So(score.Total, ShouldBeBetweenOrEqual, 0.0, 100.0)
		So(score.Values, ShouldBeGreaterThanOrEqualTo, 0.0)
	})
}

func TestCoreScore(t *testing.T) {
	Convey("Core component", t, func() {
		Convey("Partial location match scores 7, exact scores 10", func() {
			host := &profiles.Host{Location: "Lekki, Lagos"}
			nanny := &profiles.Nanny{Location: "Lagos"}
			So(coreScore(host, nanny), ShouldEqual, locationPartialPoints)

			nanny.Location = "Lekki, Lagos"
			So(coreScore(host, nanny), ShouldEqual, locationExactPoints)
		})

		Convey("Day overlap is proportional to the required days", func() {
			host := &profiles.Host{RequiredDays: []string{"Monday", "Friday"}}
			nanny := &profiles.Nanny{AvailableDays: []string{"Monday"}}

			// 1 of 2 required days available: 10 * 1/2 = 5
			So(coreScore(host, nanny), ShouldEqual, 5.0)
		})

		Convey("Age-group coverage is proportional to the required groups", func() {
			host := &profiles.Host{RequiredAgeGroups: []string{"Infant", "Toddler", "Teen", "Preteen"}}
			nanny := &profiles.Nanny{ExperienceAgeGroups: []string{"Infant"}}

			// 1 of 4 groups covered: 10 * 1/4 = 2.5
			So(coreScore(host, nanny), ShouldEqual, 2.5)
		})

		Convey("An unparseable start date earns no date points", func() {
			host := &profiles.Host{DesiredStartDate: "soon"}
			nanny := &profiles.Nanny{AvailableStartDate: "2026-01-01"}
			So(coreScore(host, nanny), ShouldEqual, 0.0)
		})
	})
}

func TestSkillsScore(t *testing.T) {
	Convey("Skills component", t, func() {
		Convey("No required skills scores the full 20", func() {
			So(skillsScore(&profiles.Host{}, &profiles.Nanny{}), ShouldEqual, MaxSkillsScore)
		})

		Convey("Half the required skills offered scores 10", func() {
			host := &profiles.Host{RequiresCooking: true, RequiresDriving: true}
			nanny := &profiles.Nanny{OffersCooking: true}
			So(skillsScore(host, nanny), ShouldEqual, 10.0)
		})

		Convey("Offered skills the host never asked for earn nothing extra", func() {
			host := &profiles.Host{RequiresCooking: true}
			nanny := &profiles.Nanny{OffersCooking: true, OffersDriving: true, OffersTutoring: true}
			So(skillsScore(host, nanny), ShouldEqual, MaxSkillsScore)
		})
	})
}

func TestValuesScore(t *testing.T) {
	Convey("Values component", t, func() {
		Convey("Declared but different parenting styles still score 2", func() {
			host := &profiles.Host{ParentingStyle: "Strict"}
			nanny := &profiles.Nanny{ParentingStyle: "Gentle"}
			So(valuesScore(host, nanny), ShouldEqual, valueBothPresentPoints)
		})

		Convey("A smoking conflict cannot drag the component negative", func() {
			host := &profiles.Host{SmokingPolicy: "No Smoking"}
			nanny := &profiles.Nanny{Smokes: true}
			So(valuesScore(host, nanny), ShouldEqual, 0.0)
		})

		Convey("A non-smoking nanny scores against any declared policy", func() {
			host := &profiles.Host{SmokingPolicy: "Outdoors Only"}
			nanny := &profiles.Nanny{Smokes: false}
			So(valuesScore(host, nanny), ShouldEqual, smokingCompatiblePoints)
		})
	})
}

func TestBonusScore(t *testing.T) {
	Convey("Bonus component", t, func() {
		Convey("Primary language found in the skills text scores 10", func() {
			host := &profiles.Host{PrimaryLanguage: "English"}
			nanny := &profiles.Nanny{LanguageSkills: "Fluent english and French"}
			So(bonusScore(host, nanny), ShouldEqual, languageBonusPoints)
		})

		Convey("Badges score certified 5, verified 3, basic 0", func() {
			host := &profiles.Host{}
			So(bonusScore(host, &profiles.Nanny{Badge: profiles.BadgeCertified}), ShouldEqual, certifiedBadgePoints)
			So(bonusScore(host, &profiles.Nanny{Badge: profiles.BadgeVerified}), ShouldEqual, verifiedBadgePoints)
			So(bonusScore(host, &profiles.Nanny{Badge: profiles.BadgeBasic}), ShouldEqual, 0.0)
		})

		Convey("Salary scores on presence of both sides", func() {
			host := &profiles.Host{SalaryRange: "100k-150k"}
			So(bonusScore(host, &profiles.Nanny{ExpectedSalary: "120k"}), ShouldEqual, salaryPresencePoints)
			So(bonusScore(host, &profiles.Nanny{}), ShouldEqual, 0.0)
		})
	})
}
