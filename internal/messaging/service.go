// internal/messaging/service.go

package messaging

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

var (
	ErrNotParticipant = errors.New("not a participant in this conversation")
	ErrInvalidBody    = errors.New("message body must be between 1 and 2000 characters")
)

// Access is a resolved authorization to one conversation: who may read
// and post, and as which side. Built from either a chat link token or a
// logged-in session.
type Access struct {
	Conversation *Conversation
	Role         string // tokens.RoleHost or tokens.RoleNanny
}

type Service interface {
	EnsureForMatch(ctx context.Context, matchID, hostID, nannyID string) (string, bool, error)
	AccessFromToken(ctx context.Context, tokenString string) (*Access, error)
	AccessFromPrincipal(ctx context.Context, principal *auth.Principal, conversationID string) (*Access, error)
	ChatTokens(conversation *Conversation) (hostToken, nannyToken string, err error)
	SendMessage(ctx context.Context, access *Access, body string) (*Message, error)
	ListMessages(ctx context.Context, access *Access, since time.Time) ([]*Message, error)
}

type service struct {
	repo        Repository
	tokenIssuer *tokens.Issuer
}

func NewService(repo Repository, tokenIssuer *tokens.Issuer) Service {
	return &service{repo: repo, tokenIssuer: tokenIssuer}
}

// EnsureForMatch creates the conversation for a match if it does not
// exist yet. Idempotent: repeated calls return the existing record.
func (s *service) EnsureForMatch(ctx context.Context, matchID, hostID, nannyID string) (string, bool, error) {
	existing, err := s.repo.GetConversationByMatch(ctx, matchID)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, ErrConversationNotFound) {
		return "", false, err
	}

	conversation := &Conversation{
		MatchID: matchID,
		HostID:  hostID,
		NannyID: nannyID,
	}
	if err := s.repo.CreateConversation(ctx, conversation); err != nil {
		return "", false, err
	}
	RecordConversationCreated()
	return conversation.ID, true, nil
}

// AccessFromToken resolves a chat link token into conversation access.
func (s *service) AccessFromToken(ctx context.Context, tokenString string) (*Access, error) {
	claims, err := s.tokenIssuer.ValidateTokenOfType(tokenString, tokens.TypeChat)
	if err != nil {
		return nil, err
	}

	conversation, err := s.repo.GetConversation(ctx, claims.ConversationID)
	if err != nil {
		return nil, err
	}
	return &Access{Conversation: conversation, Role: claims.Role}, nil
}

// AccessFromPrincipal resolves a logged-in session into conversation
// access, verifying the principal's profile is one of the two parties.
func (s *service) AccessFromPrincipal(ctx context.Context, principal *auth.Principal, conversationID string) (*Access, error) {
	conversation, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	switch {
	case principal.Role == auth.RoleHost && principal.ProfileID == conversation.HostID:
		return &Access{Conversation: conversation, Role: tokens.RoleHost}, nil
	case principal.Role == auth.RoleNanny && principal.ProfileID == conversation.NannyID:
		return &Access{Conversation: conversation, Role: tokens.RoleNanny}, nil
	}
	return nil, ErrNotParticipant
}

// ChatTokens mints the pair of chat link tokens sent out when a match
// proceeds.
func (s *service) ChatTokens(conversation *Conversation) (string, string, error) {
	hostToken, err := s.tokenIssuer.GenerateChatToken(conversation.ID, tokens.RoleHost)
	if err != nil {
		return "", "", err
	}
	nannyToken, err := s.tokenIssuer.GenerateChatToken(conversation.ID, tokens.RoleNanny)
	if err != nil {
		return "", "", err
	}
	return hostToken, nannyToken, nil
}

func (s *service) SendMessage(ctx context.Context, access *Access, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > MaxMessageLength {
		return nil, ErrInvalidBody
	}

	message := &Message{
		ConversationID: access.Conversation.ID,
		SenderRole:     access.Role,
		Body:           body,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	RecordMessageSent(access.Role)
	return message, nil
}

func (s *service) ListMessages(ctx context.Context, access *Access, since time.Time) ([]*Message, error) {
	return s.repo.ListMessages(ctx, access.Conversation.ID, since)
}
