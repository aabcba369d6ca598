// internal/profiles/metrics.go

package profiles

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	profilesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellonanny_profiles_created_total",
		Help: "Profiles created, by kind",
	}, []string{"kind"})

	segmentsSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellonanny_onboarding_segments_saved_total",
		Help: "Onboarding segment saves, by profile kind and segment",
	}, []string{"kind", "segment"})

	cvUploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellonanny_cv_uploads_total",
		Help: "Total number of CV uploads",
	})
)

func RecordProfileCreated(kind string) {
	profilesCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordSegmentSaved(kind, segment string) {
	segmentsSavedTotal.WithLabelValues(kind, segment).Inc()
}

func RecordCVUploaded() {
	cvUploadsTotal.Inc()
}
