// internal/profiles/repository.go

package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/hellonanny/hellonanny-backend/internal/airtable"
)

var (
	ErrHostNotFound  = errors.New("host profile not found")
	ErrNannyNotFound = errors.New("nanny profile not found")
)

type Repository interface {
	CreateHost(ctx context.Context, fields map[string]interface{}) (*Host, error)
	GetHost(ctx context.Context, hostID string) (*Host, error)
	UpdateHost(ctx context.Context, hostID string, fields map[string]interface{}) (*Host, error)

	CreateNanny(ctx context.Context, fields map[string]interface{}) (*Nanny, error)
	GetNanny(ctx context.Context, nannyID string) (*Nanny, error)
	UpdateNanny(ctx context.Context, nannyID string, fields map[string]interface{}) (*Nanny, error)
}

type airtableRepository struct {
	client *airtable.Client
}

func NewAirtableRepository(client *airtable.Client) Repository {
	return &airtableRepository{client: client}
}

func (r *airtableRepository) CreateHost(ctx context.Context, fields map[string]interface{}) (*Host, error) {
	record, err := r.client.CreateRecord(ctx, TableHosts, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create host profile: %w", err)
	}
	return HostFromRecord(record), nil
}

func (r *airtableRepository) GetHost(ctx context.Context, hostID string) (*Host, error) {
	record, err := r.client.GetRecord(ctx, TableHosts, hostID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, fmt.Errorf("failed to fetch host profile: %w", err)
	}
	return HostFromRecord(record), nil
}

func (r *airtableRepository) UpdateHost(ctx context.Context, hostID string, fields map[string]interface{}) (*Host, error) {
	record, err := r.client.UpdateRecord(ctx, TableHosts, hostID, fields)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, fmt.Errorf("failed to update host profile: %w", err)
	}
	return HostFromRecord(record), nil
}

func (r *airtableRepository) CreateNanny(ctx context.Context, fields map[string]interface{}) (*Nanny, error) {
	record, err := r.client.CreateRecord(ctx, TableNannies, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create nanny profile: %w", err)
	}
	return NannyFromRecord(record), nil
}

func (r *airtableRepository) GetNanny(ctx context.Context, nannyID string) (*Nanny, error) {
	record, err := r.client.GetRecord(ctx, TableNannies, nannyID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrNannyNotFound
		}
		return nil, fmt.Errorf("failed to fetch nanny profile: %w", err)
	}
	return NannyFromRecord(record), nil
}

func (r *airtableRepository) UpdateNanny(ctx context.Context, nannyID string, fields map[string]interface{}) (*Nanny, error) {
	record, err := r.client.UpdateRecord(ctx, TableNannies, nannyID, fields)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrNannyNotFound
		}
		return nil, fmt.Errorf("failed to update nanny profile: %w", err)
	}
	return NannyFromRecord(record), nil
}
