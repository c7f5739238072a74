package dto

import "github.com/prashikshan/backend/internal/app/models"

// CreateInternshipRequest is the posting form submitted by an employer.
type CreateInternshipRequest struct {
	Title               string  `json:"title" binding:"required"`
	WorkMode            string  `json:"workMode"`
	Location            string  `json:"location"`
	InternshipType      string  `json:"internshipType"`
	Duration            string  `json:"duration"`
	StipendType         string  `json:"stipendType"`
	StipendAmount       string  `json:"stipendAmount"`
	Skills              string  `json:"skills"`
	Openings            *int    `json:"openings"`
	StartDate           string  `json:"startDate"`
	ApplicationDeadline string  `json:"applicationDeadline"`
	Description         string  `json:"description"`
	Perks               string  `json:"perks"`
	Eligibility         string  `json:"eligibility"`
	Requirements        string  `json:"requirements"`
	CollegeIDs          []int64 `json:"collegeIds"`
}

// InternshipListResponse wraps a page of postings.
type InternshipListResponse struct {
	Count       int                  `json:"count"`
	Internships []*models.Internship `json:"internships"`
}
