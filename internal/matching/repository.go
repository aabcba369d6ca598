// internal/matching/repository.go

package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/airtable"
	"github.com/hellonanny/hellonanny-backend/internal/profiles"
)

// Airtable table names
const (
	TableMatches    = "Matches"
	TableShortlists = "Shortlists"
)

var (
	ErrHostNotFound  = errors.New("host not found")
	ErrNannyNotFound = errors.New("nanny not found")
	ErrMatchNotFound = errors.New("match not found")
)

type Repository interface {
	GetHost(ctx context.Context, hostID string) (*profiles.Host, error)
	GetNanny(ctx context.Context, nannyID string) (*profiles.Nanny, error)
	ListNanniesByBadge(ctx context.Context, badge profiles.NannyBadge, limit int) ([]*profiles.Nanny, error)

	CreateMatch(ctx context.Context, match *Match) error
	GetMatch(ctx context.Context, matchID string) (*Match, error)
	UpdateMatchDecision(ctx context.Context, match *Match) error
	UpdateMatchScore(ctx context.Context, matchID string, score MatchScore) error

	CreateShortlist(ctx context.Context, shortlist *Shortlist) error
	GetShortlist(ctx context.Context, shortlistID string) (*Shortlist, error)
}

type airtableRepository struct {
	client *airtable.Client
}

func NewAirtableRepository(client *airtable.Client) Repository {
	return &airtableRepository{client: client}
}

func (r *airtableRepository) GetHost(ctx context.Context, hostID string) (*profiles.Host, error) {
	record, err := r.client.GetRecord(ctx, profiles.TableHosts, hostID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, fmt.Errorf("failed to fetch host: %w", err)
	}
	return profiles.HostFromRecord(record), nil
}

func (r *airtableRepository) GetNanny(ctx context.Context, nannyID string) (*profiles.Nanny, error) {
	record, err := r.client.GetRecord(ctx, profiles.TableNannies, nannyID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrNannyNotFound
		}
		return nil, fmt.Errorf("failed to fetch nanny: %w", err)
	}
	return profiles.NannyFromRecord(record), nil
}

func (r *airtableRepository) ListNanniesByBadge(ctx context.Context, badge profiles.NannyBadge, limit int) ([]*profiles.Nanny, error) {
	records, err := r.client.ListRecords(ctx, profiles.TableNannies, &airtable.ListOptions{
		FilterByFormula: fmt.Sprintf(`{Badge}="%s"`, badge),
		MaxRecords:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list nannies: %w", err)
	}

	nannies := make([]*profiles.Nanny, 0, len(records))
	for _, record := range records {
		nannies = append(nannies, profiles.NannyFromRecord(record))
	}
	return nannies, nil
}

func (r *airtableRepository) CreateMatch(ctx context.Context, match *Match) error {
	fields := map[string]interface{}{
		"Host ID":      match.HostID,
		"Nanny ID":     match.NannyID,
		"Score":        match.Score.Total,
		"Core Score":   match.Score.Core,
		"Skills Score": match.Score.Skills,
		"Values Score": match.Score.Values,
		"Bonus Score":  match.Score.Bonus,
		"Status":       string(match.Status),
	}

	record, err := r.client.CreateRecord(ctx, TableMatches, fields)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	match.ID = record.ID
	match.CreatedAt = record.CreatedTime
	return nil
}

func (r *airtableRepository) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	record, err := r.client.GetRecord(ctx, TableMatches, matchID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to fetch match: %w", err)
	}
	return matchFromRecord(record), nil
}

func (r *airtableRepository) UpdateMatchDecision(ctx context.Context, match *Match) error {
	fields := map[string]interface{}{
		"Status": string(match.Status),
	}
	if match.HostProceed != nil {
		fields["Host Proceed"] = *match.HostProceed
	}
	if match.NannyProceed != nil {
		fields["Nanny Proceed"] = *match.NannyProceed
	}
	if match.BothProceedAt != nil {
		fields["Both Proceed At"] = match.BothProceedAt.UTC().Format(time.RFC3339)
	}

	if _, err := r.client.UpdateRecord(ctx, TableMatches, match.ID, fields); err != nil {
		return fmt.Errorf("failed to update match decision: %w", err)
	}
	return nil
}

func (r *airtableRepository) UpdateMatchScore(ctx context.Context, matchID string, score MatchScore) error {
	fields := map[string]interface{}{
		"Score":        score.Total,
		"Core Score":   score.Core,
		"Skills Score": score.Skills,
		"Values Score": score.Values,
		"Bonus Score":  score.Bonus,
	}
	if _, err := r.client.UpdateRecord(ctx, TableMatches, matchID, fields); err != nil {
		return fmt.Errorf("failed to update match score: %w", err)
	}
	return nil
}

func (r *airtableRepository) CreateShortlist(ctx context.Context, shortlist *Shortlist) error {
	fields := map[string]interface{}{
		"Host ID":   shortlist.HostID,
		"Match IDs": strings.Join(shortlist.MatchIDs, ","),
	}

	record, err := r.client.CreateRecord(ctx, TableShortlists, fields)
	if err != nil {
		return fmt.Errorf("failed to create shortlist: %w", err)
	}

	shortlist.ID = record.ID
	shortlist.CreatedAt = record.CreatedTime
	return nil
}

func (r *airtableRepository) GetShortlist(ctx context.Context, shortlistID string) (*Shortlist, error) {
	record, err := r.client.GetRecord(ctx, TableShortlists, shortlistID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, fmt.Errorf("shortlist not found")
		}
		return nil, fmt.Errorf("failed to fetch shortlist: %w", err)
	}

	shortlist := &Shortlist{
		ID:        record.ID,
		HostID:    airtable.StringField(record.Fields, "Host ID"),
		CreatedAt: record.CreatedTime,
	}
	if raw := airtable.StringField(record.Fields, "Match IDs"); raw != "" {
		shortlist.MatchIDs = strings.Split(raw, ",")
	}
	return shortlist, nil
}

func matchFromRecord(record *airtable.Record) *Match {
	f := record.Fields

	match := &Match{
		ID:      record.ID,
		HostID:  airtable.StringField(f, "Host ID"),
		NannyID: airtable.StringField(f, "Nanny ID"),
		Score: MatchScore{
			Total:  airtable.FloatField(f, "Score"),
			Core:   airtable.FloatField(f, "Core Score"),
			Skills: airtable.FloatField(f, "Skills Score"),
			Values: airtable.FloatField(f, "Values Score"),
			Bonus:  airtable.FloatField(f, "Bonus Score"),
		},
		HostProceed:  airtable.BoolPtrField(f, "Host Proceed"),
		NannyProceed: airtable.BoolPtrField(f, "Nanny Proceed"),
		Status:       MatchStatus(airtable.StringField(f, "Status")),
		CreatedAt:    record.CreatedTime,
	}
	if match.Status == "" {
		match.Status = StatusPending
	}
	if t := airtable.TimeField(f, "Both Proceed At"); !t.IsZero() {
		match.BothProceedAt = &t
	}
	return match
}
