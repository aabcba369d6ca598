// internal/auth/metrics.go

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellonanny_signups_total",
		Help: "Total number of account signups, by role",
	}, []string{"role"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellonanny_logins_total",
		Help: "Total number of successful logins, by role",
	}, []string{"role"})
)

func RecordSignup(role string) {
	signupsTotal.WithLabelValues(role).Inc()
}

func RecordLogin(role string) {
	loginsTotal.WithLabelValues(role).Inc()
}
