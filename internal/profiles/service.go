// internal/profiles/service.go

package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnknownSegment = errors.New("unknown onboarding segment")
)

// Segment names accepted by the segment-save endpoints.
const (
	SegmentCare         = "care"
	SegmentSkills       = "skills"
	SegmentValues       = "values"
	SegmentAvailability = "availability"
	SegmentExperience   = "experience"
)

type Service interface {
	CreateHost(ctx context.Context, req HostBasicInfo) (*Host, error)
	GetHost(ctx context.Context, hostID string) (*Host, error)
	SaveHostSegment(ctx context.Context, hostID, segment string, fields map[string]interface{}) (*Host, error)

	CreateNanny(ctx context.Context, req NannyBasicInfo) (*Nanny, error)
	GetNanny(ctx context.Context, nannyID string) (*Nanny, error)
	SaveNannySegment(ctx context.Context, nannyID, segment string, fields map[string]interface{}) (*Nanny, error)

	UploadCV(ctx context.Context, nannyID, filename, contentType string, body io.Reader) (*Nanny, error)
}

type service struct {
	repo     Repository
	uploader Uploader
}

func NewService(repo Repository, uploader Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) CreateHost(ctx context.Context, req HostBasicInfo) (*Host, error) {
	fields := req.Fields()
	if _, ok := fields["Tier"]; !ok {
		fields["Tier"] = string(TierStandard)
	}
	host, err := s.repo.CreateHost(ctx, fields)
	if err != nil {
		return nil, err
	}
	RecordProfileCreated("host")
	return host, nil
}

func (s *service) GetHost(ctx context.Context, hostID string) (*Host, error) {
	return s.repo.GetHost(ctx, hostID)
}

// SaveHostSegment persists one onboarding segment. The fields map comes
// from the segment DTO and the segment name is only used to validate
// the route.
func (s *service) SaveHostSegment(ctx context.Context, hostID, segment string, fields map[string]interface{}) (*Host, error) {
	switch segment {
	case SegmentCare, SegmentSkills, SegmentValues:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSegment, segment)
	}

	host, err := s.repo.UpdateHost(ctx, hostID, fields)
	if err != nil {
		return nil, err
	}
	RecordSegmentSaved("host", segment)
	return host, nil
}

func (s *service) CreateNanny(ctx context.Context, req NannyBasicInfo) (*Nanny, error) {
	fields := req.Fields()
	// New nannies start unbadged; vetting moves them to Basic and up.
	nanny, err := s.repo.CreateNanny(ctx, fields)
	if err != nil {
		return nil, err
	}
	RecordProfileCreated("nanny")
	return nanny, nil
}

func (s *service) GetNanny(ctx context.Context, nannyID string) (*Nanny, error) {
	return s.repo.GetNanny(ctx, nannyID)
}

func (s *service) SaveNannySegment(ctx context.Context, nannyID, segment string, fields map[string]interface{}) (*Nanny, error) {
	switch segment {
	case SegmentAvailability, SegmentExperience, SegmentValues:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSegment, segment)
	}

	nanny, err := s.repo.UpdateNanny(ctx, nannyID, fields)
	if err != nil {
		return nil, err
	}
	RecordSegmentSaved("nanny", segment)
	return nanny, nil
}

// UploadCV stores the CV and records its URL on the nanny profile.
func (s *service) UploadCV(ctx context.Context, nannyID, filename, contentType string, body io.Reader) (*Nanny, error) {
	if _, err := s.repo.GetNanny(ctx, nannyID); err != nil {
		return nil, err
	}

	url, err := s.uploader.SaveCV(ctx, filename, contentType, body)
	if err != nil {
		return nil, err
	}

	nanny, err := s.repo.UpdateNanny(ctx, nannyID, map[string]interface{}{"CV URL": url})
	if err != nil {
		return nil, err
	}
	RecordCVUploaded()
	return nanny, nil
}
