package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/rs/zerolog"
)

// EmployerService handles the employer profile and its postings overview
type EmployerService struct {
	employerRepo   EmployerStore
	internshipRepo InternshipStore
	fileStorage    FileStore
	logger         zerolog.Logger
}

// NewEmployerService creates a new EmployerService
func NewEmployerService(
	employerRepo EmployerStore,
	internshipRepo InternshipStore,
	fileStorage FileStore,
	logger zerolog.Logger,
) *EmployerService {
	return &EmployerService{
		employerRepo:   employerRepo,
		internshipRepo: internshipRepo,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

// GetProfile returns the employer profile with its free-form data merged
func (s *EmployerService) GetProfile(ctx context.Context, userID int64) (*dto.EmployerProfileResponse, error) {
	employer, err := s.employerRepo.GetWithEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EmployerProfileResponse{
		ID:          employer.ID,
		Email:       employer.Email,
		CompanyName: employer.CompanyName,
		GSTNumber:   employer.GSTNumber,
		ProfileData: employer.ProfileData,
	}
	if v := employer.ProfileData.NestedString("firstName"); v != "" {
		resp.FirstName = &v
	}
	if v := employer.ProfileData.NestedString("lastName"); v != "" {
		resp.LastName = &v
	}
	return resp, nil
}

// documentFields maps upload form field names to profile_data keys
var documentFields = map[string]string{
	"registrationProof": "registrationProof",
	"authLetter":        "authLetter",
	"companyLogo":       "companyLogo",
}

// UpdateProfile merges submitted form values and uploaded documents into
// profile_data. Company name and GST number go to their own columns and
// keep their old values when the form omits them.
func (s *EmployerService) UpdateProfile(ctx context.Context, userID int64, form map[string][]string, files map[string]*multipart.FileHeader) (*dto.EmployerProfileResponse, error) {
	data := models.ProfileData{}
	var companyName, gstNumber *string

	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		value := strings.TrimSpace(values[0])
		if value == "" {
			continue
		}
		switch key {
		case "companyName":
			companyName = &value
		case "gstNumber":
			gstNumber = &value
		default:
			data[key] = value
		}
	}

	documents := map[string]interface{}{}
	for field, key := range documentFields {
		fh, ok := files[field]
		if !ok || fh == nil {
			continue
		}
		path, err := s.fileStorage.SaveFileWithPath(fh, "company")
		if err != nil {
			s.logger.Error().Err(err).Int64("userID", userID).Str("field", field).Msg("Failed to store company document")
			return nil, err
		}
		documents[key] = path
	}
	if len(documents) > 0 {
		data["documents"] = documents
	}

	if err := s.employerRepo.UpdateProfile(ctx, userID, companyName, gstNumber, data); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// ListInternships lists the employer's postings with application counts
func (s *EmployerService) ListInternships(ctx context.Context, employerID int64) (*dto.InternshipListResponse, error) {
	internships, err := s.internshipRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}
	return &dto.InternshipListResponse{Count: len(internships), Internships: internships}, nil
}
