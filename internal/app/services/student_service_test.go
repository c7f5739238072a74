package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

type stubInternshipStore struct {
	internships       []*models.Internship
	lastEligibleQuery int64
}

func (s *stubInternshipStore) Create(_ context.Context, in *models.Internship) (*models.Internship, error) {
	in.ID = int64(len(s.internships) + 1)
	s.internships = append(s.internships, in)
	return in, nil
}

func (s *stubInternshipStore) ListActive(_ context.Context) ([]*models.Internship, error) {
	return s.internships, nil
}

func (s *stubInternshipStore) ListByEmployer(_ context.Context, employerID int64) ([]*models.Internship, error) {
	var out []*models.Internship
	for _, in := range s.internships {
		if in.EmployerID == employerID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (s *stubInternshipStore) ListEligible(_ context.Context, collegeID int64) ([]*models.Internship, error) {
	s.lastEligibleQuery = collegeID
	var out []*models.Internship
	for _, in := range s.internships {
		for _, id := range in.CollegeIDs {
			if id == collegeID || id == 0 {
				out = append(out, in)
				break
			}
		}
	}
	return out, nil
}

func (s *stubInternshipStore) ApplicationSummary(_ context.Context, _ int64) (int64, int64, int64, error) {
	return 3, 1, 2, nil
}

func (s *stubInternshipStore) ApplicationDetails(_ context.Context, _ int64) ([]*dto.ApplicationDetail, error) {
	return []*dto.ApplicationDetail{}, nil
}

func newStudentServiceForTest(students *stubStudentStore, internships *stubInternshipStore) *StudentService {
	colleges := &stubCollegeStore{colleges: map[int64]*models.College{
		654321: {ID: 654321, CollegeName: "Test Engineering College"},
	}}
	return NewStudentService(students, colleges, internships, &stubFileStore{}, zerolog.Nop())
}

func testFileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func TestSubmitLinkRequest_MissingIDCard(t *testing.T) {
	students := newStubStudentStore()
	students.students[1] = &models.StudentProfile{ID: 1, Status: models.StatusPending}
	svc := newStudentServiceForTest(students, &stubInternshipStore{})

	err := svc.SubmitLinkRequest(context.Background(), 1, &dto.LinkCollegeRequest{CollegeID: 654321, RollNo: "CS-042"}, nil)
	if !errors.Is(err, apperrors.ErrMissingDocument) {
		t.Errorf("expected ErrMissingDocument, got %v", err)
	}
}

func TestSubmitLinkRequest_UnknownCollege(t *testing.T) {
	students := newStubStudentStore()
	students.students[1] = &models.StudentProfile{ID: 1, Status: models.StatusPending}
	svc := newStudentServiceForTest(students, &stubInternshipStore{})

	err := svc.SubmitLinkRequest(context.Background(), 1, &dto.LinkCollegeRequest{CollegeID: 111111, RollNo: "CS-042"}, testFileHeader("card.png"))
	if !errors.Is(err, apperrors.ErrCollegeNotFound) {
		t.Errorf("expected ErrCollegeNotFound, got %v", err)
	}
}

func TestSubmitLinkRequest_ResetsToPending(t *testing.T) {
	students := newStubStudentStore()
	students.students[1] = &models.StudentProfile{ID: 1, Status: models.StatusApproved}
	svc := newStudentServiceForTest(students, &stubInternshipStore{})

	err := svc.SubmitLinkRequest(context.Background(), 1, &dto.LinkCollegeRequest{
		CollegeID:    654321,
		RollNo:       " CS-042 ",
		CollegeEmail: "Asha@College.Edu",
	}, testFileHeader("card.png"))
	if err != nil {
		t.Fatalf("SubmitLinkRequest: %v", err)
	}

	student := students.students[1]
	if student.Status != models.StatusPending {
		t.Errorf("expected resubmission to reset status to pending, got %q", student.Status)
	}
	if student.CollegeID == nil || *student.CollegeID != 654321 {
		t.Errorf("expected college id 654321, got %v", student.CollegeID)
	}
	if student.RollNo == nil || *student.RollNo != "CS-042" {
		t.Errorf("expected roll number trimmed, got %v", student.RollNo)
	}
	if student.ProfileData.NestedString("linkRequest", "collegeEmail") != "asha@college.edu" {
		t.Errorf("expected college email lowercased, got %q", student.ProfileData.NestedString("linkRequest", "collegeEmail"))
	}
	if student.ProfileData.NestedString("linkRequest", "collegeIdCard") == "" {
		t.Error("expected the stored id card path in the link request")
	}
}

func TestSubmitLinkRequest_ReplacesPreviousIDCard(t *testing.T) {
	students := newStubStudentStore()
	students.students[1] = &models.StudentProfile{
		ID:     1,
		Status: models.StatusPending,
		ProfileData: models.ProfileData{
			"linkRequest": map[string]interface{}{"collegeIdCard": "uploads/students/old-card.png"},
		},
	}
	colleges := &stubCollegeStore{colleges: map[int64]*models.College{
		654321: {ID: 654321, CollegeName: "Test Engineering College"},
	}}
	files := &stubFileStore{}
	svc := NewStudentService(students, colleges, &stubInternshipStore{}, files, zerolog.Nop())

	err := svc.SubmitLinkRequest(context.Background(), 1, &dto.LinkCollegeRequest{
		CollegeID: 654321,
		RollNo:    "CS-042",
	}, testFileHeader("new-card.png"))
	if err != nil {
		t.Fatalf("SubmitLinkRequest: %v", err)
	}

	if len(files.deleted) != 1 || files.deleted[0] != "uploads/students/old-card.png" {
		t.Errorf("expected the superseded id card deleted, got %v", files.deleted)
	}
	if got := students.students[1].ProfileData.NestedString("linkRequest", "collegeIdCard"); got != "uploads/students/new-card.png" {
		t.Errorf("expected the new card path on record, got %q", got)
	}
}

func TestSubmitLinkRequest_FirstUploadDeletesNothing(t *testing.T) {
	students := newStubStudentStore()
	students.students[1] = &models.StudentProfile{ID: 1, Status: models.StatusPending}
	colleges := &stubCollegeStore{colleges: map[int64]*models.College{
		654321: {ID: 654321, CollegeName: "Test Engineering College"},
	}}
	files := &stubFileStore{}
	svc := NewStudentService(students, colleges, &stubInternshipStore{}, files, zerolog.Nop())

	err := svc.SubmitLinkRequest(context.Background(), 1, &dto.LinkCollegeRequest{
		CollegeID: 654321,
		RollNo:    "CS-042",
	}, testFileHeader("card.png"))
	if err != nil {
		t.Fatalf("SubmitLinkRequest: %v", err)
	}
	if len(files.deleted) != 0 {
		t.Errorf("expected no deletions on a first submission, got %v", files.deleted)
	}
}

func TestGetProfile_TitleCasesStatus(t *testing.T) {
	students := newStubStudentStore()
	students.students[1] = &models.StudentProfile{ID: 1, Status: models.StatusApproved, Email: "a@example.com"}
	svc := newStudentServiceForTest(students, &stubInternshipStore{})

	resp, err := svc.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if resp.ApprovalStatus != "Approved" {
		t.Errorf("expected Approved, got %q", resp.ApprovalStatus)
	}
}

func TestEligibleJobs_UnlinkedStudentSeesOpenPostings(t *testing.T) {
	students := newStubStudentStore()
	students.students[1] = &models.StudentProfile{ID: 1, Status: models.StatusPending}
	internships := &stubInternshipStore{internships: []*models.Internship{
		{ID: 1, Title: "Open to all", CollegeIDs: []int64{0}},
		{ID: 2, Title: "College-only", CollegeIDs: []int64{654321}},
	}}
	svc := newStudentServiceForTest(students, internships)

	resp, err := svc.EligibleJobs(context.Background(), 1)
	if err != nil {
		t.Fatalf("EligibleJobs: %v", err)
	}
	if internships.lastEligibleQuery != 0 {
		t.Errorf("expected eligibility query with college id 0, got %d", internships.lastEligibleQuery)
	}
	if resp.Count != 1 {
		t.Fatalf("expected 1 open posting, got %d", resp.Count)
	}
}

func TestEligibleJobs_LinkedStudentSeesCollegePostings(t *testing.T) {
	students := newStubStudentStore()
	collegeID := int64(654321)
	students.students[1] = &models.StudentProfile{ID: 1, CollegeID: &collegeID, Status: models.StatusApproved}
	internships := &stubInternshipStore{internships: []*models.Internship{
		{ID: 1, Title: "Open to all", CollegeIDs: []int64{0}},
		{ID: 2, Title: "College-only", CollegeIDs: []int64{654321}},
		{ID: 3, Title: "Other college", CollegeIDs: []int64{111111}},
	}}
	svc := newStudentServiceForTest(students, internships)

	resp, err := svc.EligibleJobs(context.Background(), 1)
	if err != nil {
		t.Fatalf("EligibleJobs: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 eligible postings, got %d", resp.Count)
	}
}

func TestApplicationSummary(t *testing.T) {
	students := newStubStudentStore()
	svc := newStudentServiceForTest(students, &stubInternshipStore{})

	resp, err := svc.ApplicationSummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("ApplicationSummary: %v", err)
	}
	if resp.TotalApplications != 3 || resp.ActiveInternships != 1 || resp.CompletedInternships != 2 {
		t.Errorf("unexpected summary: %+v", resp)
	}
}
