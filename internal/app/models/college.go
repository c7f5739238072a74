package models

import "time"

// College is the institution record from the 'college' table
type College struct {
	ID                int64   `json:"id" db:"id"`
	CollegeName       string  `json:"collegeName" db:"college_name"`
	Location          *string `json:"city" db:"location"`
	CollegeCode       *string `json:"collegeCode" db:"college_code"`
	University        *string `json:"university" db:"university"`
	CollegeType       *string `json:"collegeType" db:"college_type"`
	CollegeEmail      *string `json:"collegeEmail" db:"college_email"`
	EstablishmentYear *string `json:"yearOfEstablishment" db:"establishment_year"`
	Address           *string `json:"campusAddress" db:"address"`
	District          *string `json:"district" db:"district"`
	Pincode           *string `json:"pinCode" db:"pincode"`
	State             *string `json:"state" db:"state"`
	WebsiteURL        *string `json:"websiteUrl" db:"website_url"`

	// Populated by joining the admin table, not a college column.
	AisheCode *string `json:"aisheCode,omitempty" db:"-"`
}

// RosterRecord is a college-supplied authoritative student record from
// 'college_student_records', used as ground truth for link verification.
type RosterRecord struct {
	ID           int64     `json:"id" db:"id"`
	CollegeName  string    `json:"collegeName" db:"college_name"`
	Email        *string   `json:"email" db:"email"`
	MobileNumber *string   `json:"mobileNumber" db:"mobile_number"`
	RollNo       *string   `json:"rollNo" db:"roll_no"`
	StudentName  string    `json:"studentName" db:"student_name"`
	Course       *string   `json:"course" db:"course"`
	CurrentYear  *string   `json:"currentYear" db:"current_year"`
	Section      *string   `json:"section" db:"section"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
