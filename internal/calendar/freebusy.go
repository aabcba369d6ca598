// internal/calendar/freebusy.go
// Concierge availability lookup against Google Calendar. Only free/busy
// data is read; event contents are never fetched.

package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two intervals share any time.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// FreeBusyService answers busy-interval queries for one calendar.
type FreeBusyService interface {
	BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]Interval, error)
}

type googleFreeBusy struct {
	service *gcal.Service
}

// NewGoogleFreeBusy builds a FreeBusyService backed by the Google
// Calendar API using a service-account credentials file.
func NewGoogleFreeBusy(ctx context.Context, credentialsFile string) (FreeBusyService, error) {
	service, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calendar client: %w", err)
	}
	return &googleFreeBusy{service: service}, nil
}

func (g *googleFreeBusy) BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]Interval, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin: from.UTC().Format(time.RFC3339),
		TimeMax: to.UTC().Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: calendarID}},
	}

	resp, err := g.service.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("free/busy query failed: %w", err)
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("calendar %s missing from free/busy response", calendarID)
	}
	for _, calErr := range cal.Errors {
		return nil, fmt.Errorf("free/busy lookup error: %s", calErr.Reason)
	}

	intervals := make([]Interval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("malformed busy period start %q: %w", period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("malformed busy period end %q: %w", period.End, err)
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}
	return intervals, nil
}

// AlwaysFree is a FreeBusyService that reports no busy time. Used when
// no concierge calendar is configured.
type AlwaysFree struct{}

func (AlwaysFree) BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]Interval, error) {
	return nil, nil
}
