// internal/auth/repository.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hellonanny/hellonanny-backend/internal/airtable"
)

const TableUsers = "Users"

var (
	ErrUserNotFound = errors.New("user not found")
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type airtableRepository struct {
	client *airtable.Client
}

func NewAirtableRepository(client *airtable.Client) Repository {
	return &airtableRepository{client: client}
}

func (r *airtableRepository) CreateUser(ctx context.Context, user *User) error {
	fields := map[string]interface{}{
		"Email":         user.Email,
		"Password Hash": user.PasswordHash,
		"Role":          string(user.Role),
	}
	if user.ProfileID != "" {
		fields["Profile ID"] = user.ProfileID
	}

	record, err := r.client.CreateRecord(ctx, TableUsers, fields)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = record.ID
	user.CreatedAt = record.CreatedTime
	return nil
}

func (r *airtableRepository) GetUserByID(ctx context.Context, userID string) (*User, error) {
	record, err := r.client.GetRecord(ctx, TableUsers, userID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return userFromRecord(record), nil
}

func (r *airtableRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	// Emails are stored lowercased, so an exact formula match suffices.
	formula := fmt.Sprintf(`{Email}="%s"`, strings.ToLower(email))
	records, err := r.client.ListRecords(ctx, TableUsers, &airtable.ListOptions{
		FilterByFormula: formula,
		MaxRecords:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrUserNotFound
	}
	return userFromRecord(records[0]), nil
}

func userFromRecord(record *airtable.Record) *User {
	f := record.Fields
	return &User{
		ID:           record.ID,
		Email:        airtable.StringField(f, "Email"),
		PasswordHash: airtable.StringField(f, "Password Hash"),
		Role:         Role(airtable.StringField(f, "Role")),
		ProfileID:    airtable.StringField(f, "Profile ID"),
		CreatedAt:    record.CreatedTime,
	}
}
