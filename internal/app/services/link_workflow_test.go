package services

import (
	"context"
	"testing"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/rs/zerolog"
)

// Walks a student account through the whole onboarding flow: signup with a
// college picked, a link request with a roll number, the admin adding the
// matching roster record, roster verification and the resulting profile.
func TestCollegeLinkWorkflow(t *testing.T) {
	ctx := context.Background()

	students := newStubStudentStore()
	identity := newStubIdentityStore()
	identity.students = students
	roster := &stubRosterStore{}

	collegeName := "Test Engineering College"
	colleges := &stubCollegeStore{
		admin:    &models.AdminProfile{ID: 300000001, CollegeName: &collegeName, ProfileData: models.ProfileData{}},
		college:  &models.College{ID: 654321, CollegeName: collegeName},
		colleges: map[int64]*models.College{654321: {ID: 654321, CollegeName: collegeName}},
	}

	authSvc, _ := newAuthServiceWithColleges(identity, newStubTokenStore(), colleges)
	studentSvc := NewStudentService(students, colleges, &stubInternshipStore{}, &stubFileStore{}, zerolog.Nop())
	collegeSvc := NewCollegeService(identity, colleges, students, roster, &stubFileStore{}, zerolog.Nop())

	registered, err := authSvc.Register(ctx, &dto.RegisterRequest{
		Email:     "asha@example.com",
		Password:  "password1",
		FirstName: "Asha",
		LastName:  "Rao",
		RoleID:    1,
		CollegeID: 654321,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	studentID := registered.UserID

	student := students.students[studentID]
	if student == nil {
		t.Fatal("expected a student row after registration")
	}
	if student.CollegeID == nil || *student.CollegeID != 654321 {
		t.Fatalf("expected the signup college on the student row, got %v", student.CollegeID)
	}
	if student.Status != models.StatusPending {
		t.Fatalf("expected freshly registered student pending, got %q", student.Status)
	}

	err = studentSvc.SubmitLinkRequest(ctx, studentID, &dto.LinkCollegeRequest{
		CollegeID: 654321,
		RollNo:    "CS101",
	}, testFileHeader("card.png"))
	if err != nil {
		t.Fatalf("SubmitLinkRequest: %v", err)
	}

	if _, err := collegeSvc.AddRosterRecord(ctx, 300000001, &dto.AddRosterRecordRequest{
		StudentName: "Asha Rao",
		RollNo:      "CS101",
	}); err != nil {
		t.Fatalf("AddRosterRecord: %v", err)
	}

	verify, err := collegeSvc.VerifyMatch(ctx, 300000001, studentID)
	if err != nil {
		t.Fatalf("VerifyMatch: %v", err)
	}
	if !verify.Match {
		t.Fatal("expected the roster record to match the link request")
	}
	if verify.Record == nil || verify.Record.RollNo == nil || *verify.Record.RollNo != "CS101" {
		t.Errorf("expected the matched roster record in the response, got %+v", verify.Record)
	}

	profile, err := studentSvc.GetProfile(ctx, studentID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.ApprovalStatus != "Approved" {
		t.Errorf("expected the student approved after verification, got %q", profile.ApprovalStatus)
	}
	if profile.CollegeName == nil || *profile.CollegeName != collegeName {
		t.Errorf("expected the linked college on the profile, got %v", profile.CollegeName)
	}
	if profile.RollNo == nil || *profile.RollNo != "CS101" {
		t.Errorf("expected the submitted roll number on the profile, got %v", profile.RollNo)
	}
}
