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

// CollegeService handles the college admin workflows: dashboard, roster
// management and student approval.
type CollegeService struct {
	identityRepo IdentityStore
	collegeRepo  CollegeStore
	studentRepo  StudentStore
	rosterRepo   RosterStore
	fileStorage  FileStore
	logger       zerolog.Logger
}

// NewCollegeService creates a new CollegeService
func NewCollegeService(
	identityRepo IdentityStore,
	collegeRepo CollegeStore,
	studentRepo StudentStore,
	rosterRepo RosterStore,
	fileStorage FileStore,
	logger zerolog.Logger,
) *CollegeService {
	return &CollegeService{
		identityRepo: identityRepo,
		collegeRepo:  collegeRepo,
		studentRepo:  studentRepo,
		rosterRepo:   rosterRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

// ListColleges lists all colleges for the public registration picker
func (s *CollegeService) ListColleges(ctx context.Context) ([]*dto.CollegeListItem, error) {
	colleges, err := s.collegeRepo.ListColleges(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CollegeListItem, 0, len(colleges))
	for _, c := range colleges {
		items = append(items, &dto.CollegeListItem{
			ID:          c.ID,
			CollegeName: c.CollegeName,
			AISHECode:   c.AisheCode,
		})
	}
	return items, nil
}

// adminCollege resolves the caller's admin profile and its college row
func (s *CollegeService) adminCollege(ctx context.Context, adminID int64) (*models.AdminProfile, *models.College, error) {
	admin, college, err := s.collegeRepo.GetAdminWithCollege(ctx, adminID)
	if err != nil {
		return nil, nil, err
	}
	return admin, college, nil
}

// Stats returns the dashboard counters for the admin's college
func (s *CollegeService) Stats(ctx context.Context, adminID int64) (*dto.CollegeStatsResponse, error) {
	_, college, err := s.adminCollege(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if college == nil {
		return &dto.CollegeStatsResponse{}, nil
	}

	total, active, pending, completed, err := s.collegeRepo.Stats(ctx, college.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CollegeStatsResponse{
		TotalStudents:        total,
		ActiveInternships:    active,
		PendingApplications:  pending,
		CompletedInternships: completed,
	}, nil
}

// ListStudentsByStatus lists the admin's college students in a given state
func (s *CollegeService) ListStudentsByStatus(ctx context.Context, adminID int64, status models.StudentStatus) ([]*dto.PendingStudentItem, error) {
	_, college, err := s.adminCollege(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if college == nil {
		return []*dto.PendingStudentItem{}, nil
	}

	students, err := s.studentRepo.ListByCollegeAndStatus(ctx, college.ID, status)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PendingStudentItem, 0, len(students))
	for _, st := range students {
		items = append(items, &dto.PendingStudentItem{
			ID:          st.ID,
			FirstName:   st.FirstName,
			LastName:    st.LastName,
			RollNo:      st.RollNo,
			Email:       st.Email,
			ProfileData: st.ProfileData,
			User:        dto.UserEmail{Email: st.Email},
		})
	}
	return items, nil
}

// ApproveStudent sets a student's approval status. The admin must belong to
// the student's college; anything but Approved or Rejected resets to pending.
func (s *CollegeService) ApproveStudent(ctx context.Context, adminID, studentID int64, status string) (models.StudentStatus, error) {
	_, college, err := s.adminCollege(ctx, adminID)
	if err != nil {
		return "", err
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return "", err
	}
	if college == nil || student.CollegeID == nil || *student.CollegeID != college.ID {
		return "", apperrors.ErrPermissionDenied
	}

	var target models.StudentStatus
	switch status {
	case "Approved":
		target = models.StatusApproved
	case "Rejected":
		target = models.StatusRejected
	default:
		target = models.StatusPending
	}

	if err := s.studentRepo.UpdateStatus(ctx, studentID, target); err != nil {
		return "", err
	}
	s.logger.Info().Int64("studentID", studentID).Str("status", string(target)).Msg("Student approval status set")
	return target, nil
}

// VerifyMatch compares a student's self-asserted identity against the
// admin's roster. A hit on any of email, mobile or roll number approves a
// pending student; a rejected student stays rejected.
func (s *CollegeService) VerifyMatch(ctx context.Context, adminID, studentID int64) (*dto.VerifyMatchResponse, error) {
	admin, college, err := s.adminCollege(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin.CollegeName == nil || *admin.CollegeName == "" {
		return nil, apperrors.NewValidationError("admin account has no college")
	}

	student, err := s.studentRepo.GetWithEmail(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if college == nil || student.CollegeID == nil || *student.CollegeID != college.ID {
		return nil, apperrors.ErrPermissionDenied
	}

	rollNo := ""
	if student.RollNo != nil {
		rollNo = *student.RollNo
	}
	mobile := student.ProfileData.NestedString("personal", "mobileNumber")

	record, err := s.rosterRepo.FindMatch(ctx, *admin.CollegeName, student.Email, mobile, rollNo)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &dto.VerifyMatchResponse{
			Match:   false,
			Message: "No matching college record found",
		}, nil
	}

	promoted, err := s.studentRepo.ApproveIfPending(ctx, studentID)
	if err != nil {
		return nil, err
	}
	message := "Student verified and approved"
	if !promoted {
		message = "Matching record found; approval status unchanged"
	}
	return &dto.VerifyMatchResponse{
		Match:   true,
		Record:  record,
		Message: message,
	}, nil
}

// AddRosterRecord adds one authoritative student record to the admin's
// college roster, rejecting duplicate roll numbers or emails.
func (s *CollegeService) AddRosterRecord(ctx context.Context, adminID int64, req *dto.AddRosterRecordRequest) (*models.RosterRecord, error) {
	admin, _, err := s.adminCollege(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin.CollegeName == nil || *admin.CollegeName == "" {
		return nil, apperrors.NewValidationError("admin account has no college")
	}

	duplicate, err := s.rosterRepo.Exists(ctx, *admin.CollegeName, strings.TrimSpace(req.RollNo), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperrors.ErrDuplicateRosterRecord
	}

	record := &models.RosterRecord{
		CollegeName:  *admin.CollegeName,
		StudentName:  strings.TrimSpace(req.StudentName),
		Email:        optional(strings.ToLower(req.Email)),
		MobileNumber: optional(req.MobileNumber),
		RollNo:       optional(req.RollNo),
		Course:       optional(req.Course),
		CurrentYear:  optional(req.CurrentYear),
		Section:      optional(req.Section),
	}
	return s.rosterRepo.Insert(ctx, record)
}

// ListRosterRecords lists the admin's college roster, newest first
func (s *CollegeService) ListRosterRecords(ctx context.Context, adminID int64) ([]*models.RosterRecord, error) {
	admin, _, err := s.adminCollege(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin.CollegeName == nil || *admin.CollegeName == "" {
		return []*models.RosterRecord{}, nil
	}
	return s.rosterRepo.ListByCollege(ctx, *admin.CollegeName)
}

// GetProfile returns the admin profile joined with its college record
func (s *CollegeService) GetProfile(ctx context.Context, adminID int64) (*dto.CollegeProfileResponse, error) {
	admin, college, err := s.adminCollege(ctx, adminID)
	if err != nil {
		return nil, err
	}
	identity, err := s.identityRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	return &dto.CollegeProfileResponse{
		AdminID:         admin.ID,
		FirstName:       admin.FirstName,
		LastName:        admin.LastName,
		Email:           identity.Email,
		Designation:     admin.Designation,
		Department:      admin.Department,
		OfficialEmail:   admin.OfficialEmail,
		MobileNumber:    admin.MobileNumber,
		AlternateNumber: admin.AlternateMobileNumber,
		Gender:          admin.Gender,
		AISHECode:       admin.AisheCode,
		CollegeWebsite:  admin.CollegeWebsite,
		College:         college,
		ProfileData:     admin.ProfileData,
	}, nil
}

// UpdateProfile updates the admin profile and its college record in one
// transaction. Uploaded documents land in profile_data.
func (s *CollegeService) UpdateProfile(ctx context.Context, adminID int64, req *dto.UpdateCollegeProfileRequest, idProof, authLetter *multipart.FileHeader) (*dto.CollegeProfileResponse, error) {
	adminSets := map[string]interface{}{}
	setIf := func(column string, v *string) {
		if v != nil {
			adminSets[column] = *v
		}
	}
	setIf("first_name", req.FirstName)
	setIf("last_name", req.LastName)
	setIf("designation", req.Designation)
	setIf("department", req.Department)
	setIf("official_email", req.OfficialEmail)
	setIf("mobile_number", req.MobileNumber)
	setIf("alternate_mobile_number", req.AlternateNumber)
	setIf("gender", req.Gender)
	setIf("aishe_code", req.AISHECode)
	setIf("college_website", req.CollegeWebsite)
	setIf("college_name", req.CollegeName)

	adminData := models.ProfileData{}
	documents := map[string]interface{}{}
	if idProof != nil {
		path, err := s.fileStorage.SaveFileWithPath(idProof, "college")
		if err != nil {
			return nil, err
		}
		documents["idProof"] = path
	}
	if authLetter != nil {
		path, err := s.fileStorage.SaveFileWithPath(authLetter, "college")
		if err != nil {
			return nil, err
		}
		documents["authLetter"] = path
	}
	if len(documents) > 0 {
		adminData["documents"] = documents
	}

	collegeSets := map[string]interface{}{}
	setCollege := func(column string, v *string) {
		if v != nil {
			collegeSets[column] = *v
		}
	}
	setCollege("college_name", req.CollegeName)
	setCollege("university", req.University)
	setCollege("college_type", req.CollegeType)
	setCollege("college_email", req.CollegeEmail)
	setCollege("establishment_year", req.EstablishmentYear)
	setCollege("address", req.Address)
	setCollege("location", req.City)
	setCollege("district", req.District)
	setCollege("pincode", req.Pincode)
	setCollege("state", req.State)
	setCollege("website_url", req.WebsiteURL)

	// Renaming the college would orphan the admin linkage; the name set on
	// the college row always follows the admin's.
	delete(collegeSets, "college_name")

	if err := s.collegeRepo.UpdateAdminAndCollege(ctx, adminID, adminSets, adminData, collegeSets); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, adminID)
}
