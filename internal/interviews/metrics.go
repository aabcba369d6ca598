// internal/interviews/metrics.go

package interviews

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellonanny_interview_requests_total",
		Help: "Total number of interview requests created",
	})

	slotsSelectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellonanny_interview_slots_selected_total",
		Help: "Total number of interview slots selected by nannies",
	})

	declinedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellonanny_interviews_declined_total",
		Help: "Total number of interview requests where no slot worked",
	})

	conciergeFilteredSlots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellonanny_concierge_filtered_slots_total",
		Help: "Total slots hidden because of concierge calendar conflicts",
	})
)

func RecordInterviewRequested() {
	requestsTotal.Inc()
}

func RecordSlotSelected() {
	slotsSelectedTotal.Inc()
}

func RecordInterviewDeclined() {
	declinedTotal.Inc()
}

func RecordConciergeFilter(hidden int) {
	if hidden > 0 {
		conciergeFilteredSlots.Add(float64(hidden))
	}
}
