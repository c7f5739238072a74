package services

import (
	"context"
	"strings"
	"time"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// InternshipService handles posting creation and the public listing
type InternshipService struct {
	internshipRepo InternshipStore
	logger         zerolog.Logger
}

// NewInternshipService creates a new InternshipService
func NewInternshipService(internshipRepo InternshipStore, logger zerolog.Logger) *InternshipService {
	return &InternshipService{
		internshipRepo: internshipRepo,
		logger:         logger,
	}
}

const postingDateLayout = "2006-01-02"

// Create inserts a new active posting owned by the calling employer
func (s *InternshipService) Create(ctx context.Context, employerID int64, req *dto.CreateInternshipRequest) (*models.Internship, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("title is required")
	}

	startDate, err := parsePostingDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("startDate must be formatted as YYYY-MM-DD")
	}
	deadline, err := parsePostingDate(req.ApplicationDeadline)
	if err != nil {
		return nil, apperrors.NewValidationError("applicationDeadline must be formatted as YYYY-MM-DD")
	}

	in := &models.Internship{
		EmployerID:          employerID,
		Title:               strings.TrimSpace(req.Title),
		WorkMode:            optional(req.WorkMode),
		Location:            optional(req.Location),
		InternshipType:      optional(req.InternshipType),
		Duration:            optional(req.Duration),
		StipendType:         optional(req.StipendType),
		StipendAmount:       optional(req.StipendAmount),
		Skills:              optional(req.Skills),
		Openings:            req.Openings,
		StartDate:           startDate,
		ApplicationDeadline: deadline,
		Description:         optional(req.Description),
		Perks:               optional(req.Perks),
		Eligibility:         optional(req.Eligibility),
		Requirements:        optional(req.Requirements),
		Status:              "Active",
		CollegeIDs:          req.CollegeIDs,
	}

	created, err := s.internshipRepo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("internshipID", created.ID).Int64("employerID", employerID).Msg("Internship posted")
	return created, nil
}

// ListActive lists all active postings for the public feed
func (s *InternshipService) ListActive(ctx context.Context) (*dto.InternshipListResponse, error) {
	internships, err := s.internshipRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InternshipListResponse{Count: len(internships), Internships: internships}, nil
}

func parsePostingDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(postingDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
