// internal/interviews/repository.go

package interviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/airtable"
)

const TableInterviews = "Interviews"

var (
	ErrInterviewNotFound = errors.New("interview request not found")
)

type Repository interface {
	CreateRequest(ctx context.Context, request *InterviewRequest) error
	GetRequest(ctx context.Context, requestID string) (*InterviewRequest, error)
	GetRequestByMatch(ctx context.Context, matchID string) (*InterviewRequest, error)
	UpdateRequest(ctx context.Context, request *InterviewRequest) error
}

type airtableRepository struct {
	client *airtable.Client
}

func NewAirtableRepository(client *airtable.Client) Repository {
	return &airtableRepository{client: client}
}

func (r *airtableRepository) CreateRequest(ctx context.Context, request *InterviewRequest) error {
	record, err := r.client.CreateRecord(ctx, TableInterviews, requestFields(request))
	if err != nil {
		return fmt.Errorf("failed to create interview request: %w", err)
	}

	request.ID = record.ID
	request.CreatedAt = record.CreatedTime
	return nil
}

func (r *airtableRepository) GetRequest(ctx context.Context, requestID string) (*InterviewRequest, error) {
	record, err := r.client.GetRecord(ctx, TableInterviews, requestID)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to fetch interview request: %w", err)
	}
	return requestFromRecord(record), nil
}

// GetRequestByMatch resolves the request currently governing a match.
// A match can accumulate declined rounds, but at most one request is
// ever open or booked, and that one wins. With only declined rounds the
// newest is returned so a stale link still renders its outcome.
func (r *airtableRepository) GetRequestByMatch(ctx context.Context, matchID string) (*InterviewRequest, error) {
	records, err := r.client.ListRecords(ctx, TableInterviews, &airtable.ListOptions{
		FilterByFormula: fmt.Sprintf(`{Match ID}="%s"`, matchID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up interview request: %w", err)
	}

	var newest *InterviewRequest
	for _, record := range records {
		request := requestFromRecord(record)
		if request.Status != StatusNoneAvailable {
			return request, nil
		}
		if newest == nil || request.CreatedAt.After(newest.CreatedAt) {
			newest = request
		}
	}
	if newest == nil {
		return nil, ErrInterviewNotFound
	}
	return newest, nil
}

func (r *airtableRepository) UpdateRequest(ctx context.Context, request *InterviewRequest) error {
	if _, err := r.client.UpdateRecord(ctx, TableInterviews, request.ID, requestFields(request)); err != nil {
		return fmt.Errorf("failed to update interview request: %w", err)
	}
	return nil
}

func requestFields(request *InterviewRequest) map[string]interface{} {
	slots := make([]string, 0, len(request.Slots))
	for _, slot := range request.Slots {
		slots = append(slots, slot.UTC().Format(time.RFC3339))
	}

	fields := map[string]interface{}{
		"Match ID":       request.MatchID,
		"Host ID":        request.HostID,
		"Nanny ID":       request.NannyID,
		"Proposed Slots": strings.Join(slots, ","),
		"Status":         string(request.Status),
	}
	if request.SelectedSlot != nil {
		fields["Selected Slot"] = request.SelectedSlot.UTC().Format(time.RFC3339)
	}
	if request.MeetingID != "" {
		fields["Meeting ID"] = request.MeetingID
	}
	if request.MeetingJoinURL != "" {
		fields["Meeting Join URL"] = request.MeetingJoinURL
	}
	return fields
}

func requestFromRecord(record *airtable.Record) *InterviewRequest {
	f := record.Fields

	request := &InterviewRequest{
		ID:             record.ID,
		MatchID:        airtable.StringField(f, "Match ID"),
		HostID:         airtable.StringField(f, "Host ID"),
		NannyID:        airtable.StringField(f, "Nanny ID"),
		Status:         InterviewStatus(airtable.StringField(f, "Status")),
		MeetingID:      airtable.StringField(f, "Meeting ID"),
		MeetingJoinURL: airtable.StringField(f, "Meeting Join URL"),
		CreatedAt:      record.CreatedTime,
	}

	if raw := airtable.StringField(f, "Proposed Slots"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if t, err := time.Parse(time.RFC3339, strings.TrimSpace(part)); err == nil {
				request.Slots = append(request.Slots, t)
			}
		}
	}
	if t := airtable.TimeField(f, "Selected Slot"); !t.IsZero() {
		request.SelectedSlot = &t
	}
	if request.Status == "" {
		request.Status = StatusAwaitingNanny
	}
	return request
}
