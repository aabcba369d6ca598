// internal/notifications/metrics.go

package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellonanny_notifications_sent_total",
		Help: "Notifications delivered, by channel and kind",
	}, []string{"channel", "kind"})

	notificationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellonanny_notifications_failed_total",
		Help: "Notification delivery failures, by channel and kind",
	}, []string{"channel", "kind"})
)

func RecordNotificationSent(channel, kind string) {
	notificationsSentTotal.WithLabelValues(channel, kind).Inc()
}

func RecordNotificationFailure(channel, kind string) {
	notificationsFailedTotal.WithLabelValues(channel, kind).Inc()
}
