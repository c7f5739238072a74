package models

import "time"

// Internship is a posting from the 'internships' table
type Internship struct {
	ID                  int64      `json:"id" db:"id"`
	EmployerID          int64      `json:"employerId" db:"employer_id"`
	Title               string     `json:"title" db:"title"`
	WorkMode            *string    `json:"workMode" db:"work_mode"`
	Location            *string    `json:"location" db:"location"`
	InternshipType      *string    `json:"internshipType" db:"internship_type"`
	Duration            *string    `json:"duration" db:"duration"`
	StipendType         *string    `json:"stipendType" db:"stipend_type"`
	StipendAmount       *string    `json:"stipendAmount" db:"stipend_amount"`
	Skills              *string    `json:"skills" db:"skills"`
	Openings            *int       `json:"openings" db:"openings"`
	StartDate           *time.Time `json:"startDate" db:"start_date"`
	ApplicationDeadline *time.Time `json:"applicationDeadline" db:"application_deadline"`
	Description         *string    `json:"description" db:"description"`
	Perks               *string    `json:"perks" db:"perks"`
	Eligibility         *string    `json:"eligibility" db:"eligibility"`
	Requirements        *string    `json:"requirements" db:"requirements"`
	Status              string     `json:"status" db:"status"`
	CollegeIDs          []int64    `json:"collegeIds" db:"college_ids"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`

	// Populated by joins where needed
	CompanyName      *string `json:"companyName,omitempty"`
	ApplicationCount *int64  `json:"applicationCount,omitempty"`
}
