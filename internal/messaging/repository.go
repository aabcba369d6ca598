// internal/messaging/repository.go

package messaging

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/airtable"
)

const (
	TableConversations = "Conversations"
	TableMessages      = "Messages"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
)

type Repository interface {
	CreateConversation(ctx context.Context, conversation *Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*Conversation, error)
	GetConversationByMatch(ctx context.Context, matchID string) (*Conversation, error)

	CreateMessage(ctx context.Context, message *Message) error
	ListMessages(ctx context.Context, conversationID string, since time.Time) ([]*Message, error)
}

type airtableRepository struct {
	client *airtable.Client
}

func NewAirtableRepository(client *airtable.Client) Repository {
	return &airtableRepository{client: client}
}

func (r *airtableRepository) CreateConversation(ctx context.Context, conversation *Conversation) error {
	fields := map[string]interface{}{
		"Match ID": conversation.MatchID,
		"Host ID":  conversation.HostID,
		"Nanny ID": conversation.NannyID,
	}

	record, err := r.client.CreateRecord(ctx, TableConversations, fields)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	conversation.ID = record.ID
	conversation.CreatedAt = record.CreatedTime
	return nil
}

func (r *airtableRepository) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	record, err := r.client.GetRecord(ctx, TableConversations, conversationID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	return conversationFromRecord(record), nil
}

func (r *airtableRepository) GetConversationByMatch(ctx context.Context, matchID string) (*Conversation, error) {
	records, err := r.client.ListRecords(ctx, TableConversations, &airtable.ListOptions{
		FilterByFormula: fmt.Sprintf(`{Match ID}="%s"`, matchID),
		MaxRecords:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrConversationNotFound
	}
	return conversationFromRecord(records[0]), nil
}

func (r *airtableRepository) CreateMessage(ctx context.Context, message *Message) error {
	fields := map[string]interface{}{
		"Conversation ID": message.ConversationID,
		"Sender Role":     message.SenderRole,
		"Body":            message.Body,
	}

	record, err := r.client.CreateRecord(ctx, TableMessages, fields)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	message.ID = record.ID
	message.CreatedAt = record.CreatedTime
	return nil
}

// ListMessages returns the conversation's messages after the since
// cutoff, oldest first. The since filter runs client-side on record
// creation time, which the store stamps itself.
func (r *airtableRepository) ListMessages(ctx context.Context, conversationID string, since time.Time) ([]*Message, error) {
	records, err := r.client.ListRecords(ctx, TableMessages, &airtable.ListOptions{
		FilterByFormula: fmt.Sprintf(`{Conversation ID}="%s"`, conversationID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*Message, 0, len(records))
	for _, record := range records {
		message := messageFromRecord(record)
		if !since.IsZero() && !message.CreatedAt.After(since) {
			continue
		}
		messages = append(messages, message)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func conversationFromRecord(record *airtable.Record) *Conversation {
	f := record.Fields
	return &Conversation{
		ID:        record.ID,
		MatchID:   airtable.StringField(f, "Match ID"),
		HostID:    airtable.StringField(f, "Host ID"),
		NannyID:   airtable.StringField(f, "Nanny ID"),
		CreatedAt: record.CreatedTime,
	}
}

func messageFromRecord(record *airtable.Record) *Message {
	f := record.Fields
	return &Message{
		ID:             record.ID,
		ConversationID: airtable.StringField(f, "Conversation ID"),
		SenderRole:     airtable.StringField(f, "Sender Role"),
		Body:           airtable.StringField(f, "Body"),
		CreatedAt:      record.CreatedTime,
	}
}
