// internal/messaging/metrics.go

package messaging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	conversationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellonanny_conversations_created_total",
		Help: "Total number of match conversations created",
	})

	messagesSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellonanny_messages_sent_total",
		Help: "Total number of chat messages sent, by sender role",
	}, []string{"role"})
)

func RecordConversationCreated() {
	conversationsCreatedTotal.Inc()
}

func RecordMessageSent(role string) {
	messagesSentTotal.WithLabelValues(role).Inc()
}
