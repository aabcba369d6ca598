// internal/interviews/service.go

package interviews

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hellonanny/hellonanny-backend/internal/calendar"
	"github.com/hellonanny/hellonanny-backend/internal/matching"
	"github.com/hellonanny/hellonanny-backend/internal/meetings"
	"github.com/hellonanny/hellonanny-backend/internal/profiles"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

var (
	ErrNotMatchHost      = errors.New("match belongs to a different host")
	ErrNotInterviewNanny = errors.New("interview request belongs to a different nanny")
	ErrMatchNotProceeded = errors.New("both parties must proceed before an interview can be requested")
	ErrInterviewExists   = errors.New("an open interview request already exists for this match")
	ErrInvalidSlots      = errors.New("exactly five valid interview slots are required")
	ErrSlotNotAvailable  = errors.New("selected slot is not available")
	ErrInterviewResolved = errors.New("interview request has already been answered")
)

// Notifier delivers interview lifecycle notifications, fire-and-forget.
type Notifier interface {
	InterviewSlotsProposed(ctx context.Context, nanny *profiles.Nanny, respondURL string)
	InterviewConfirmed(ctx context.Context, host *profiles.Host, nanny *profiles.Nanny, slot time.Time, joinURL string)
	InterviewDeclined(ctx context.Context, host *profiles.Host)
}

// NannyView is what the nanny sees when opening an interview link:
// the slots after any concierge filtering, plus an optional message.
type NannyView struct {
	RequestID  string          `json:"request_id"`
	FamilyName string          `json:"family_name"`
	Slots      []time.Time     `json:"slots"`
	Message    string          `json:"message,omitempty"`
	Status     InterviewStatus `json:"status"`
}

type Service interface {
	CreateRequest(ctx context.Context, hostProfileID, matchID string, slots []string) (*InterviewRequest, error)
	RequestFromToken(ctx context.Context, tokenString string) (*InterviewRequest, error)
	RequestForNanny(ctx context.Context, nannyProfileID, matchID string) (*InterviewRequest, error)
	SlotsForNanny(ctx context.Context, request *InterviewRequest) (*NannyView, error)
	SelectSlot(ctx context.Context, request *InterviewRequest, slot string) (*InterviewRequest, error)
	DeclineAll(ctx context.Context, request *InterviewRequest) (*InterviewRequest, error)
	GetRequest(ctx context.Context, requestID string) (*InterviewRequest, error)
}

type service struct {
	repo        Repository
	matches     matching.Repository
	freeBusy    calendar.FreeBusyService
	calendarID  string
	meetings    meetings.Provider
	tokenIssuer *tokens.Issuer
	notifier    Notifier
	baseURL     string
}

func NewService(repo Repository, matches matching.Repository, freeBusy calendar.FreeBusyService, calendarID string, meetingProvider meetings.Provider, tokenIssuer *tokens.Issuer, notifier Notifier, baseURL string) Service {
	return &service{
		repo:        repo,
		matches:     matches,
		freeBusy:    freeBusy,
		calendarID:  calendarID,
		meetings:    meetingProvider,
		tokenIssuer: tokenIssuer,
		notifier:    notifier,
		baseURL:     baseURL,
	}
}

// CreateRequest opens a negotiation round: the host proposes exactly
// five slots for a mutually proceeded match. A round the nanny declined
// does not block a fresh proposal; an open or booked one does.
func (s *service) CreateRequest(ctx context.Context, hostProfileID, matchID string, slots []string) (*InterviewRequest, error) {
	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.HostID != hostProfileID {
		return nil, ErrNotMatchHost
	}
	if match.Status != matching.StatusProceeded {
		return nil, ErrMatchNotProceeded
	}

	existing, err := s.repo.GetRequestByMatch(ctx, matchID)
	if err == nil && existing.Status != StatusNoneAvailable {
		return nil, ErrInterviewExists
	}
	if err != nil && !errors.Is(err, ErrInterviewNotFound) {
		return nil, err
	}

	parsed, err := parseSlots(slots)
	if err != nil {
		return nil, err
	}

	request := &InterviewRequest{
		MatchID: match.ID,
		HostID:  match.HostID,
		NannyID: match.NannyID,
		Slots:   parsed,
		Status:  StatusAwaitingNanny,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	RecordInterviewRequested()

	s.notifyProposed(ctx, request)
	return request, nil
}

// RequestFromToken resolves an interview link into its request. The
// token must have been minted for the request's nanny.
func (s *service) RequestFromToken(ctx context.Context, tokenString string) (*InterviewRequest, error) {
	claims, err := s.tokenIssuer.ValidateTokenOfType(tokenString, tokens.TypeInterview)
	if err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequestByMatch(ctx, claims.MatchID)
	if err != nil {
		return nil, err
	}
	if claims.NannyID != request.NannyID {
		return nil, tokens.ErrInvalidToken
	}
	return request, nil
}

// RequestForNanny resolves a match's interview request for a logged-in
// nanny, who must be the invited party.
func (s *service) RequestForNanny(ctx context.Context, nannyProfileID, matchID string) (*InterviewRequest, error) {
	request, err := s.repo.GetRequestByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if request.NannyID != nannyProfileID {
		return nil, ErrNotInterviewNanny
	}
	return request, nil
}

// SlotsForNanny builds the slot list the nanny should see. VIP hosts
// get concierge support, so their slots are filtered against the
// concierge calendar first.
func (s *service) SlotsForNanny(ctx context.Context, request *InterviewRequest) (*NannyView, error) {
	host, err := s.matches.GetHost(ctx, request.HostID)
	if err != nil {
		return nil, err
	}

	visible := request.Slots
	message := ""
	if host.Tier == profiles.TierVIP {
		visible, message = FilterSlotsByConciergeFree(ctx, s.freeBusy, s.calendarID, request.Slots)
		RecordConciergeFilter(len(request.Slots) - len(visible))
	}

	return &NannyView{
		RequestID:  request.ID,
		FamilyName: host.FamilyName,
		Slots:      visible,
		Message:    message,
		Status:     request.Status,
	}, nil
}

// SelectSlot records the nanny's chosen slot and books the meeting.
// Only a slot from the original proposal is accepted; anything else is
// ErrSlotNotAvailable, including an empty value and, for VIP hosts, a
// slot the concierge filter would have hidden.
func (s *service) SelectSlot(ctx context.Context, request *InterviewRequest, slot string) (*InterviewRequest, error) {
	if request.Resolved() {
		return nil, ErrInterviewResolved
	}

	chosen, err := time.Parse(time.RFC3339, slot)
	if err != nil || !request.HasSlot(chosen) {
		return nil, ErrSlotNotAvailable
	}
	if !s.slotBookable(ctx, request, chosen) {
		return nil, ErrSlotNotAvailable
	}

	request.SelectedSlot = &chosen
	request.Status = StatusSlotSelected

	// Meeting booking is best-effort: a provider outage must not undo
	// the nanny's selection.
	meeting, err := s.meetings.CreateMeeting(ctx, "HelloNanny interview", chosen, SlotDuration)
	if err != nil {
		log.Printf("Meeting creation failed for interview %s: %v", request.ID, err)
	} else if meeting.ID != "" {
		request.MeetingID = meeting.ID
		request.MeetingJoinURL = meeting.JoinURL
		request.Status = StatusMeetingCreated
	}

	if err := s.repo.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}
	RecordSlotSelected()

	s.notifyConfirmed(ctx, request, chosen)
	return request, nil
}

// DeclineAll records that none of the proposed slots work.
func (s *service) DeclineAll(ctx context.Context, request *InterviewRequest) (*InterviewRequest, error) {
	if request.Resolved() {
		return nil, ErrInterviewResolved
	}

	request.Status = StatusNoneAvailable
	if err := s.repo.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}
	RecordInterviewDeclined()

	if s.notifier != nil {
		if host, err := s.matches.GetHost(ctx, request.HostID); err == nil {
			s.notifier.InterviewDeclined(ctx, host)
		}
	}
	return request, nil
}

func (s *service) GetRequest(ctx context.Context, requestID string) (*InterviewRequest, error) {
	return s.repo.GetRequest(ctx, requestID)
}

// slotBookable re-applies the concierge filter for VIP hosts so a slot
// hidden from the picker cannot be submitted directly. A host lookup
// failure degrades to permissive, matching the filter itself.
func (s *service) slotBookable(ctx context.Context, request *InterviewRequest, chosen time.Time) bool {
	host, err := s.matches.GetHost(ctx, request.HostID)
	if err != nil || host.Tier != profiles.TierVIP {
		return true
	}
	available, _ := FilterSlotsByConciergeFree(ctx, s.freeBusy, s.calendarID, request.Slots)
	for _, slot := range available {
		if slot.Equal(chosen) {
			return true
		}
	}
	return false
}

func parseSlots(raw []string) ([]time.Time, error) {
	if len(raw) != SlotCount {
		return nil, ErrInvalidSlots
	}
	parsed := make([]time.Time, 0, SlotCount)
	for _, value := range raw {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("%w: bad slot %q", ErrInvalidSlots, value)
		}
		parsed = append(parsed, t)
	}
	return parsed, nil
}

func (s *service) notifyProposed(ctx context.Context, request *InterviewRequest) {
	if s.notifier == nil {
		return
	}
	nanny, err := s.matches.GetNanny(ctx, request.NannyID)
	if err != nil {
		log.Printf("Interview notification skipped, nanny fetch failed: %v", err)
		return
	}
	token, err := s.tokenIssuer.GenerateInterviewToken(request.MatchID, request.NannyID)
	if err != nil {
		log.Printf("Interview notification skipped, token generation failed: %v", err)
		return
	}
	respondURL := fmt.Sprintf("%s/interviews/respond?token=%s", s.baseURL, token)
	s.notifier.InterviewSlotsProposed(ctx, nanny, respondURL)
}

func (s *service) notifyConfirmed(ctx context.Context, request *InterviewRequest, slot time.Time) {
	if s.notifier == nil {
		return
	}
	host, err := s.matches.GetHost(ctx, request.HostID)
	if err != nil {
		log.Printf("Confirmation notification skipped, host fetch failed: %v", err)
		return
	}
	nanny, err := s.matches.GetNanny(ctx, request.NannyID)
	if err != nil {
		log.Printf("Confirmation notification skipped, nanny fetch failed: %v", err)
		return
	}
	s.notifier.InterviewConfirmed(ctx, host, nanny, slot, request.MeetingJoinURL)
}
