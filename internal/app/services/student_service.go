package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// StudentService handles the student-facing workflows: college linking,
// profile reads and the public application views.
type StudentService struct {
	studentRepo    StudentStore
	collegeRepo    CollegeStore
	internshipRepo InternshipStore
	fileStorage    FileStore
	logger         zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo StudentStore,
	collegeRepo CollegeStore,
	internshipRepo InternshipStore,
	fileStorage FileStore,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		collegeRepo:    collegeRepo,
		internshipRepo: internshipRepo,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

// SubmitLinkRequest files a student's request to be linked with a college.
// The college id card upload is mandatory; resubmitting overwrites the
// previous request and resets the status to pending.
func (s *StudentService) SubmitLinkRequest(ctx context.Context, userID int64, req *dto.LinkCollegeRequest, idCard *multipart.FileHeader) error {
	if idCard == nil {
		return apperrors.ErrMissingDocument
	}

	student, err := s.studentRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	previousCard := student.ProfileData.NestedString("linkRequest", "collegeIdCard")

	college, err := s.collegeRepo.GetByID(ctx, req.CollegeID)
	if err != nil {
		return err
	}

	cardPath, err := s.fileStorage.SaveFileWithPath(idCard, "students")
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to store college id card")
		return err
	}

	details := models.ProfileData{
		"linkRequest": map[string]interface{}{
			"course":        req.Course,
			"branch":        req.Branch,
			"year":          req.Year,
			"section":       req.Section,
			"collegeEmail":  strings.ToLower(strings.TrimSpace(req.CollegeEmail)),
			"collegeIdCard": cardPath,
		},
	}

	err = s.studentRepo.SaveLinkRequest(ctx, userID, college.ID, college.CollegeName, strings.TrimSpace(req.RollNo), details)
	if err != nil {
		return err
	}

	// A resubmission replaces the stored id card; the superseded upload is
	// removed once the new request is on record.
	if previousCard != "" && previousCard != cardPath {
		if err := s.fileStorage.DeleteFile(previousCard); err != nil {
			s.logger.Warn().Err(err).Str("path", previousCard).Msg("Failed to remove replaced id card")
		}
	}

	s.logger.Info().Int64("userID", userID).Int64("collegeID", college.ID).Msg("College link request submitted")
	return nil
}

// GetProfile returns the student's own profile view
func (s *StudentService) GetProfile(ctx context.Context, userID int64) (*dto.StudentProfileResponse, error) {
	student, err := s.studentRepo.GetWithEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentProfileResponse{
		ID:             student.ID,
		FirstName:      student.FirstName,
		LastName:       student.LastName,
		Email:          student.Email,
		CollegeID:      student.CollegeID,
		CollegeName:    student.CollegeName,
		RollNo:         student.RollNo,
		ApprovalStatus: titleStatus(student.Status),
		Profile:        student.ProfileData,
	}, nil
}

// UpdateProfile applies name changes and merges free-form profile data
func (s *StudentService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	err := s.studentRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Profile)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// ApplicationSummary returns a student's application counters
func (s *StudentService) ApplicationSummary(ctx context.Context, studentID int64) (*dto.ApplicationSummaryResponse, error) {
	total, active, completed, err := s.internshipRepo.ApplicationSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.ApplicationSummaryResponse{
		TotalApplications:    total,
		ActiveInternships:    active,
		CompletedInternships: completed,
	}, nil
}

// EligibleJobs lists the postings open to the student's college. A student
// without a college link only sees postings open to everyone.
func (s *StudentService) EligibleJobs(ctx context.Context, studentID int64) (*dto.EligibleJobsResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	collegeID := int64(0)
	if student.CollegeID != nil {
		collegeID = *student.CollegeID
	}

	jobs, err := s.internshipRepo.ListEligible(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	return &dto.EligibleJobsResponse{Count: len(jobs), Jobs: jobs}, nil
}

// ApplicationDetails lists a student's applications with their postings
func (s *StudentService) ApplicationDetails(ctx context.Context, studentID int64) (*dto.ApplicationDetailsResponse, error) {
	details, err := s.internshipRepo.ApplicationDetails(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.ApplicationDetailsResponse{Count: len(details), Applications: details}, nil
}

// titleStatus renders the stored status with a leading capital, the way
// the dashboard displays it.
func titleStatus(status models.StudentStatus) string {
	s := string(status)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
