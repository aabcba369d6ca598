// internal/messaging/service_test.go

package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

type fakeRepo struct {
	conversations map[string]*Conversation
	messages      []*Message
	nextID        int
	clock         time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		conversations: make(map[string]*Conversation),
		clock:         time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepo) CreateConversation(_ context.Context, conversation *Conversation) error {
	f.nextID++
	conversation.ID = fmt.Sprintf("conv%d", f.nextID)
	conversation.CreatedAt = f.tick()
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeRepo) GetConversation(_ context.Context, conversationID string) (*Conversation, error) {
	conversation, ok := f.conversations[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conversation, nil
}

func (f *fakeRepo) GetConversationByMatch(_ context.Context, matchID string) (*Conversation, error) {
	for _, conversation := range f.conversations {
		if conversation.MatchID == matchID {
			return conversation, nil
		}
	}
	return nil, ErrConversationNotFound
}

func (f *fakeRepo) CreateMessage(_ context.Context, message *Message) error {
	f.nextID++
	message.ID = fmt.Sprintf("msg%d", f.nextID)
	message.CreatedAt = f.tick()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeRepo) ListMessages(_ context.Context, conversationID string, since time.Time) ([]*Message, error) {
	var out []*Message
	for _, message := range f.messages {
		if message.ConversationID != conversationID {
			continue
		}
		if !since.IsZero() && !message.CreatedAt.After(since) {
			continue
		}
		out = append(out, message)
	}
	return out, nil
}

func newTestService() (Service, *fakeRepo, *tokens.Issuer) {
	repo := newFakeRepo()
	issuer := tokens.NewIssuer("test-secret", time.Hour)
	return NewService(repo, issuer), repo, issuer
}

func TestEnsureForMatch(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	id1, created, err := svc.EnsureForMatch(ctx, "matchA", "hostA", "nannyA")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if !created || id1 == "" {
		t.Fatalf("got created=%v id=%q, want a new conversation", created, id1)
	}

	id2, created, err := svc.EnsureForMatch(ctx, "matchA", "hostA", "nannyA")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if created || id2 != id1 {
		t.Errorf("got created=%v id=%q, want existing %q", created, id2, id1)
	}
	if len(repo.conversations) != 1 {
		t.Errorf("%d conversations stored, want 1", len(repo.conversations))
	}
}

func TestConversationAccess(t *testing.T) {
	svc, _, issuer := newTestService()
	ctx := context.Background()

	convID, _, err := svc.EnsureForMatch(ctx, "matchA", "hostA", "nannyA")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	t.Run("chat token grants access with the embedded role", func(t *testing.T) {
		token, err := issuer.GenerateChatToken(convID, tokens.RoleNanny)
		if err != nil {
			t.Fatalf("token: %v", err)
		}

		access, err := svc.AccessFromToken(ctx, token)
		if err != nil {
			t.Fatalf("AccessFromToken: %v", err)
		}
		if access.Role != tokens.RoleNanny || access.Conversation.ID != convID {
			t.Errorf("access = %+v", access)
		}
	})

	t.Run("a session for a party grants access", func(t *testing.T) {
		principal := &auth.Principal{UserID: "user1", Role: auth.RoleHost, ProfileID: "hostA"}
		access, err := svc.AccessFromPrincipal(ctx, principal, convID)
		if err != nil {
			t.Fatalf("AccessFromPrincipal: %v", err)
		}
		if access.Role != tokens.RoleHost {
			t.Errorf("role = %s, want host", access.Role)
		}
	})

	t.Run("a session for a stranger is rejected", func(t *testing.T) {
		principal := &auth.Principal{UserID: "user2", Role: auth.RoleHost, ProfileID: "hostB"}
		if _, err := svc.AccessFromPrincipal(ctx, principal, convID); !errors.Is(err, ErrNotParticipant) {
			t.Errorf("err = %v, want ErrNotParticipant", err)
		}
	})

	t.Run("an invalid token is rejected", func(t *testing.T) {
		if _, err := svc.AccessFromToken(ctx, "garbage"); !errors.Is(err, tokens.ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})
}

func TestSendAndListMessages(t *testing.T) {
	svc, _, issuer := newTestService()
	ctx := context.Background()

	convID, _, err := svc.EnsureForMatch(ctx, "matchA", "hostA", "nannyA")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	hostToken, _ := issuer.GenerateChatToken(convID, tokens.RoleHost)
	nannyToken, _ := issuer.GenerateChatToken(convID, tokens.RoleNanny)
	hostAccess, _ := svc.AccessFromToken(ctx, hostToken)
	nannyAccess, _ := svc.AccessFromToken(ctx, nannyToken)

	if _, err := svc.SendMessage(ctx, hostAccess, "Hello! When could you start?"); err != nil {
		t.Fatalf("host send: %v", err)
	}
	second, err := svc.SendMessage(ctx, nannyAccess, "Hi! I could start next month.")
	if err != nil {
		t.Fatalf("nanny send: %v", err)
	}

	messages, err := svc.ListMessages(ctx, hostAccess, time.Time{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].SenderRole != tokens.RoleHost || messages[1].SenderRole != tokens.RoleNanny {
		t.Errorf("sender roles = %s, %s", messages[0].SenderRole, messages[1].SenderRole)
	}

	// Polling with the first message's timestamp returns only the second.
	newer, err := svc.ListMessages(ctx, hostAccess, messages[0].CreatedAt)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(newer) != 1 || newer[0].ID != second.ID {
		t.Errorf("poll returned %d messages", len(newer))
	}

	t.Run("rejects empty and oversized bodies", func(t *testing.T) {
		if _, err := svc.SendMessage(ctx, hostAccess, "   "); !errors.Is(err, ErrInvalidBody) {
			t.Errorf("blank body: err = %v, want ErrInvalidBody", err)
		}
		if _, err := svc.SendMessage(ctx, hostAccess, strings.Repeat("x", MaxMessageLength+1)); !errors.Is(err, ErrInvalidBody) {
			t.Errorf("oversized body: err = %v, want ErrInvalidBody", err)
		}
	})
}
