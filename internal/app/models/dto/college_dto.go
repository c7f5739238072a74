package dto

import "github.com/prashikshan/backend/internal/app/models"

// CollegeListItem is one row of the public college picker.
type CollegeListItem struct {
	ID          int64   `json:"id"`
	CollegeName string  `json:"collegeName"`
	AISHECode   *string `json:"aisheCode"`
}

// CollegeStatsResponse summarizes a college's dashboard numbers.
type CollegeStatsResponse struct {
	TotalStudents        int64 `json:"totalStudents"`
	ActiveInternships    int64 `json:"activeInternships"`
	PendingApplications  int64 `json:"pendingApplications"`
	CompletedInternships int64 `json:"completedInternships"`
}

// PendingStudentItem is one student awaiting college approval.
type PendingStudentItem struct {
	ID          int64              `json:"id"`
	FirstName   *string            `json:"firstName"`
	LastName    *string            `json:"lastName"`
	RollNo      *string            `json:"rollNo"`
	Email       string             `json:"email"`
	ProfileData models.ProfileData `json:"profileData,omitempty"`
	User        UserEmail          `json:"user"`
}

// UserEmail carries just the account email of a joined user.
type UserEmail struct {
	Email string `json:"email"`
}

type ApproveStudentRequest struct {
	Status string `json:"status" binding:"required"`
}

// VerifyMatchResponse reports whether a pending student matched the roster.
type VerifyMatchResponse struct {
	Match   bool                 `json:"match"`
	Record  *models.RosterRecord `json:"record,omitempty"`
	Message string               `json:"message"`
}

// AddRosterRecordRequest is one roster row uploaded by a college admin.
type AddRosterRecordRequest struct {
	StudentName  string `json:"studentName" binding:"required"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	RollNo       string `json:"rollNo"`
	Course       string `json:"course"`
	CurrentYear  string `json:"currentYear"`
	Section      string `json:"section"`
}

// CollegeProfileResponse joins the admin account with its college row.
type CollegeProfileResponse struct {
	AdminID         int64              `json:"adminId"`
	FirstName       *string            `json:"firstName"`
	LastName        *string            `json:"lastName"`
	Email           string             `json:"email"`
	Designation     *string            `json:"designation"`
	Department      *string            `json:"department"`
	OfficialEmail   *string            `json:"officialEmail"`
	MobileNumber    *string            `json:"mobileNumber"`
	AlternateNumber *string            `json:"alternateNumber"`
	Gender          *string            `json:"gender"`
	AISHECode       *string            `json:"aisheCode"`
	CollegeWebsite  *string            `json:"collegeWebsite"`
	College         *models.College    `json:"college"`
	ProfileData     models.ProfileData `json:"profileData,omitempty"`
}

// UpdateCollegeProfileRequest updates admin fields and the college record
// in one call. All fields are optional; absent fields are left untouched.
type UpdateCollegeProfileRequest struct {
	FirstName       *string `form:"firstName" json:"firstName"`
	LastName        *string `form:"lastName" json:"lastName"`
	Designation     *string `form:"designation" json:"designation"`
	Department      *string `form:"department" json:"department"`
	OfficialEmail   *string `form:"officialEmail" json:"officialEmail"`
	MobileNumber    *string `form:"mobileNumber" json:"mobileNumber"`
	AlternateNumber *string `form:"alternateNumber" json:"alternateNumber"`
	Gender          *string `form:"gender" json:"gender"`
	AISHECode       *string `form:"aisheCode" json:"aisheCode"`
	CollegeWebsite  *string `form:"collegeWebsite" json:"collegeWebsite"`

	CollegeName       *string `form:"collegeName" json:"collegeName"`
	University        *string `form:"university" json:"university"`
	CollegeType       *string `form:"collegeType" json:"collegeType"`
	CollegeEmail      *string `form:"collegeEmail" json:"collegeEmail"`
	EstablishmentYear *string `form:"establishmentYear" json:"establishmentYear"`
	Address           *string `form:"address" json:"address"`
	City              *string `form:"city" json:"city"`
	District          *string `form:"district" json:"district"`
	Pincode           *string `form:"pincode" json:"pincode"`
	State             *string `form:"state" json:"state"`
	WebsiteURL        *string `form:"websiteUrl" json:"websiteUrl"`
}
