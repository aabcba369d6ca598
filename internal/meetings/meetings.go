// internal/meetings/meetings.go
// Video meeting creation for confirmed interviews. The provider
// integration is not wired yet, so the stub returns an empty meeting
// and the interview flow carries on without links.

package meetings

import (
	"context"
	"log"
	"time"
)

// Meeting is a scheduled video call for one interview.
type Meeting struct {
	ID       string `json:"id"`
	JoinURL  string `json:"join_url"`
	StartURL string `json:"start_url"`
}

// Provider creates video meetings.
type Provider interface {
	CreateMeeting(ctx context.Context, topic string, startsAt time.Time, duration time.Duration) (*Meeting, error)
}

// StubProvider satisfies Provider without an external video service.
// TODO: replace with the Zoom server-to-server OAuth integration once
// the account is provisioned.
type StubProvider struct{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (p *StubProvider) CreateMeeting(ctx context.Context, topic string, startsAt time.Time, duration time.Duration) (*Meeting, error) {
	log.Printf("Meeting requested (no provider configured): %q at %s", topic, startsAt.Format(time.RFC3339))
	return &Meeting{}, nil
}
