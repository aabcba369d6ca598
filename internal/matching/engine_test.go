// internal/matching/engine_test.go

package matching

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hellonanny/hellonanny-backend/internal/profiles"
)

func TestPoolBadges(t *testing.T) {
	Convey("Candidate pool badges by host tier", t, func() {
		Convey("VIP hosts see certified, verified and basic nannies", func() {
			So(PoolBadges(profiles.TierVIP), ShouldResemble,
				[]profiles.NannyBadge{profiles.BadgeCertified, profiles.BadgeVerified, profiles.BadgeBasic})
		})

		Convey("Standard and Fast Track hosts never see certified nannies", func() {
			expected := []profiles.NannyBadge{profiles.BadgeVerified, profiles.BadgeBasic}
			So(PoolBadges(profiles.TierStandard), ShouldResemble, expected)
			So(PoolBadges(profiles.TierFastTrack), ShouldResemble, expected)
		})

		Convey("An unknown tier gets the restricted pool", func() {
			So(PoolBadges(profiles.HostTier("")), ShouldResemble,
				[]profiles.NannyBadge{profiles.BadgeVerified, profiles.BadgeBasic})
		})
	})
}

func TestRankCandidates(t *testing.T) {
	Convey("Given a host and a mixed candidate pool", t, func() {
		host, strong := perfectPair()
		strong.ID = "strong"

		decent := &profiles.Nanny{
			ID:                      "decent",
			Location:                "Lagos",
			AccommodationPreference: "Live-in",
			AvailableStartDate:      "2026-09-01",
			AvailableDays:           []string{"Monday", "Wednesday"},
			ExperienceAgeGroups:     []string{"Toddler"},
			OffersCooking:           true,
			OffersDriving:           true,
			Badge:                   profiles.BadgeVerified,
		}

		filtered := &profiles.Nanny{
			ID:       "filtered",
			Location: "Nairobi",
		}

		weak := &profiles.Nanny{
			ID:       "weak",
			Location: "Lagos",
		}

		pool := []*profiles.Nanny{weak, filtered, decent, strong}

		Convey("Ranking is descending by total score", func() {
			ranked := RankCandidates(host, pool, EngineOptions{MinScore: 1})

			So(len(ranked), ShouldBeGreaterThanOrEqualTo, 2)
			So(ranked[0].Nanny.ID, ShouldEqual, "strong")
			for i := 1; i < len(ranked); i++ {
				So(ranked[i].Score.Total, ShouldBeLessThanOrEqualTo, ranked[i-1].Score.Total)
			}
		})

		Convey("Candidates failing the must-match filters never appear", func() {
			ranked := RankCandidates(host, pool, EngineOptions{MinScore: 1})
			for _, r := range ranked {
				So(r.Nanny.ID, ShouldNotEqual, "filtered")
			}
		})

		Convey("The minimum-score cutoff drops weak candidates", func() {
			ranked := RankCandidates(host, pool, EngineOptions{MinScore: 90})
			So(len(ranked), ShouldEqual, 1)
			So(ranked[0].Nanny.ID, ShouldEqual, "strong")
		})

		Convey("MaxCandidates truncates after sorting", func() {
			ranked := RankCandidates(host, pool, EngineOptions{MinScore: 1, MaxCandidates: 1})
			So(len(ranked), ShouldEqual, 1)
			So(ranked[0].Nanny.ID, ShouldEqual, "strong")
		})

		Convey("An empty pool ranks to an empty result", func() {
			So(RankCandidates(host, nil, EngineOptions{}), ShouldBeEmpty)
		})
	})

	Convey("Score ties break on badge priority", t, func() {
		host := &profiles.Host{Location: "Lagos"}

		// Basic and unset badge both earn zero bonus points, so these two
		// otherwise identical nannies tie on total and only the badge
		// priority separates them.
		unbadged := &profiles.Nanny{ID: "unbadged", Location: "Lagos"}
		basic := &profiles.Nanny{ID: "basic", Location: "Lagos", Badge: profiles.BadgeBasic}

		ranked := RankCandidates(host, []*profiles.Nanny{unbadged, basic}, EngineOptions{MinScore: 1})
		So(len(ranked), ShouldEqual, 2)
		So(ranked[0].Score.Total, ShouldEqual, ranked[1].Score.Total)
		So(ranked[0].Nanny.ID, ShouldEqual, "basic")
	})
}
