// internal/messaging/models.go

package messaging

import "time"

// MaxMessageLength bounds a single chat message.
const MaxMessageLength = 2000

// Conversation is the chat channel for one mutually proceeded match.
// One conversation per match, created when the match proceeds.
type Conversation struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	HostID    string    `json:"host_id"`
	NannyID   string    `json:"nanny_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one chat message. SenderRole is "host" or "nanny".
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderRole     string    `json:"sender_role"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
