package dto

import "github.com/prashikshan/backend/internal/app/models"

// LinkCollegeRequest is the multipart form a student submits to
// request linking with a college.
type LinkCollegeRequest struct {
	CollegeID    int64  `form:"collegeId" binding:"required"`
	RollNo       string `form:"rollNo" binding:"required"`
	Course       string `form:"course"`
	Branch       string `form:"branch"`
	Year         string `form:"year"`
	Section      string `form:"section"`
	CollegeEmail string `form:"collegeEmail"`
}

// StudentProfileResponse is the student's own profile view.
type StudentProfileResponse struct {
	ID             int64              `json:"id"`
	FirstName      *string            `json:"firstName"`
	LastName       *string            `json:"lastName"`
	Email          string             `json:"email"`
	CollegeID      *int64             `json:"collegeId"`
	CollegeName    *string            `json:"collegeName"`
	RollNo         *string            `json:"rollNo"`
	ApprovalStatus string             `json:"approvalStatus"`
	Profile        models.ProfileData `json:"profile,omitempty"`
}

type UpdateStudentProfileRequest struct {
	FirstName *string            `json:"firstName"`
	LastName  *string            `json:"lastName"`
	Profile   models.ProfileData `json:"profile"`
}

// ApplicationSummaryResponse mirrors the dashboard counter card.
type ApplicationSummaryResponse struct {
	TotalApplications    int64 `json:"total_applications"`
	ActiveInternships    int64 `json:"active_internships"`
	CompletedInternships int64 `json:"completed_internships"`
}

// EligibleJobsResponse lists internships open to the student's college.
type EligibleJobsResponse struct {
	Count int                  `json:"count"`
	Jobs  []*models.Internship `json:"jobs"`
}

// ApplicationDetail is one application joined with its internship row.
type ApplicationDetail struct {
	ApplicationID int64   `json:"application_id"`
	JobStatus     *string `json:"job_status"`
	JobID         int64   `json:"job_id"`
	Title         *string `json:"title"`
	CompanyName   *string `json:"company_name"`
	Location      *string `json:"location"`
	WorkMode      *string `json:"work_mode"`
	Stipend       *string `json:"stipend"`
	Duration      *string `json:"duration"`
}

type ApplicationDetailsResponse struct {
	Count        int                  `json:"count"`
	Applications []*ApplicationDetail `json:"applications"`
}
