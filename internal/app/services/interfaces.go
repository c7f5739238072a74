package services

import (
	"context"
	"mime/multipart"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
)

// Data access contracts consumed by the services. The repositories package
// provides the production implementations; tests substitute stubs.

type IdentityStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	IDExists(ctx context.Context, id int64) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)
	GetByID(ctx context.Context, id int64) (*models.Identity, error)
	CreateStudent(ctx context.Context, identity *models.Identity, profile *models.StudentProfile) error
	CreateFaculty(ctx context.Context, identity *models.Identity, profile *models.FacultyProfile) error
	CreateAdmin(ctx context.Context, identity *models.Identity, profile *models.AdminProfile) error
	CreateEmployer(ctx context.Context, identity *models.Identity, profile *models.EmployerProfile) error
	CreateStateAdmin(ctx context.Context, identity *models.Identity, profile *models.StateAdminProfile) error
}

type TokenStore interface {
	Upsert(ctx context.Context, userID int64, accessToken, refreshToken string) error
	Delete(ctx context.Context, userID int64) error
}

type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.StudentProfile, error)
	GetWithEmail(ctx context.Context, id int64) (*models.StudentProfile, error)
	SaveLinkRequest(ctx context.Context, id int64, collegeID int64, collegeName string, rollNo string, details models.ProfileData) error
	ListByCollegeAndStatus(ctx context.Context, collegeID int64, status models.StudentStatus) ([]*models.StudentProfile, error)
	UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error
	ApproveIfPending(ctx context.Context, id int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName *string, data models.ProfileData) error
}

type CollegeStore interface {
	ListColleges(ctx context.Context) ([]*models.College, error)
	GetByID(ctx context.Context, id int64) (*models.College, error)
	GetAdminWithCollege(ctx context.Context, userID int64) (*models.AdminProfile, *models.College, error)
	UpdateAdminAndCollege(ctx context.Context, userID int64, adminSets map[string]interface{}, adminData models.ProfileData, collegeSets map[string]interface{}) error
	Stats(ctx context.Context, collegeID int64) (totalStudents, active, pending, completed int64, err error)
}

type RosterStore interface {
	Exists(ctx context.Context, collegeName, rollNo, email string) (bool, error)
	Insert(ctx context.Context, record *models.RosterRecord) (*models.RosterRecord, error)
	ListByCollege(ctx context.Context, collegeName string) ([]*models.RosterRecord, error)
	FindMatch(ctx context.Context, collegeName, email, mobile, rollNo string) (*models.RosterRecord, error)
}

type EmployerStore interface {
	GetWithEmail(ctx context.Context, id int64) (*models.EmployerProfile, error)
	UpdateProfile(ctx context.Context, id int64, companyName, gstNumber *string, data models.ProfileData) error
}

type InternshipStore interface {
	Create(ctx context.Context, in *models.Internship) (*models.Internship, error)
	ListActive(ctx context.Context) ([]*models.Internship, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]*models.Internship, error)
	ListEligible(ctx context.Context, collegeID int64) ([]*models.Internship, error)
	ApplicationSummary(ctx context.Context, studentID int64) (total, active, completed int64, err error)
	ApplicationDetails(ctx context.Context, studentID int64) ([]*dto.ApplicationDetail, error)
}

type LogbookStore interface {
	Create(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.LogEntry, error)
	Update(ctx context.Context, studentID, entryID int64, content, status *string) (*models.LogEntry, error)
	Delete(ctx context.Context, studentID, entryID int64) error
}

type ProfileStore interface {
	GetRoleProfile(ctx context.Context, role models.Role, id int64) (interface{}, error)
}

// FileStore abstracts upload persistence for profile documents
type FileStore interface {
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)
	DeleteFile(path string) error
}
