// internal/matching/metrics.go

package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellonanny_matches_created_total",
		Help: "Total number of match records created",
	})

	shortlistsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellonanny_shortlists_generated_total",
		Help: "Total number of shortlists generated",
	})

	shortlistSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hellonanny_shortlist_size",
		Help:    "Number of matches per generated shortlist",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
	})

	matchScoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hellonanny_match_score",
		Help:    "Distribution of computed match scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellonanny_match_decisions_total",
		Help: "Proceed/pass decisions recorded, by party and choice",
	}, []string{"party", "choice"})
)

func RecordMatchCreated() {
	matchesCreatedTotal.Inc()
}

func RecordShortlistGenerated(size int) {
	shortlistsGeneratedTotal.Inc()
	shortlistSize.Observe(float64(size))
}

func RecordMatchScore(total float64) {
	matchScoreDistribution.Observe(total)
}

func RecordDecision(party, choice string) {
	decisionsTotal.WithLabelValues(party, choice).Inc()
}
