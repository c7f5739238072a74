package models

// StudentProfile is the 'students' row keyed by the register id
type StudentProfile struct {
	ID          int64         `json:"id" db:"id"`
	FirstName   *string       `json:"firstName" db:"first_name"`
	MidName     *string       `json:"midName,omitempty" db:"mid_name"`
	LastName    *string       `json:"lastName" db:"last_name"`
	CollegeName *string       `json:"collegeName" db:"college_name"`
	CollegeID   *int64        `json:"collegeId" db:"college_id"`
	RollNo      *string       `json:"rollNo" db:"roll_no"`
	Status      StudentStatus `json:"status" db:"status"`
	ProfileData ProfileData   `json:"profileData" db:"profile_data"`

	// Populated by joining the register table, not a students column.
	Email string `json:"email,omitempty" db:"-"`
}

// FacultyProfile is the 'faculty' row keyed by the register id
type FacultyProfile struct {
	ID          int64       `json:"id" db:"id"`
	FirstName   *string     `json:"firstName" db:"first_name"`
	MidName     *string     `json:"midName,omitempty" db:"mid_name"`
	LastName    *string     `json:"lastName" db:"last_name"`
	CollegeName *string     `json:"collegeName" db:"college_name"`
	ProfileData ProfileData `json:"profileData" db:"profile_data"`
}

// AdminProfile is the 'admin' (college admin) row keyed by the register id
type AdminProfile struct {
	ID                    int64       `json:"id" db:"id"`
	FirstName             *string     `json:"firstName" db:"first_name"`
	MidName               *string     `json:"midName,omitempty" db:"mid_name"`
	LastName              *string     `json:"lastName" db:"last_name"`
	CollegeName           *string     `json:"collegeName" db:"college_name"`
	AisheCode             *string     `json:"aisheCode" db:"aishe_code"`
	CollegeWebsite        *string     `json:"collegeWebsite" db:"college_website"`
	Designation           *string     `json:"designation" db:"designation"`
	Department            *string     `json:"department" db:"department"`
	OfficialEmail         *string     `json:"officialEmail" db:"official_email"`
	MobileNumber          *string     `json:"mobileNumber" db:"mobile_number"`
	AlternateMobileNumber *string     `json:"alternateMobileNumber" db:"alternate_mobile_number"`
	Gender                *string     `json:"gender" db:"gender"`
	ProfileData           ProfileData `json:"profileData" db:"profile_data"`
}

// EmployerProfile is the 'employer' row keyed by the register id
type EmployerProfile struct {
	ID          int64       `json:"id" db:"id"`
	CompanyName *string     `json:"companyName" db:"company_name"`
	GSTNumber   *string     `json:"gstNumber" db:"gst_number"`
	ProfileData ProfileData `json:"profileData" db:"profile_data"`

	// Populated by joining the register table, not an employer column.
	Email string `json:"email,omitempty" db:"-"`
}

// StateAdminProfile is the 'state_admin' row keyed by the register id
type StateAdminProfile struct {
	ID          int64       `json:"id" db:"id"`
	FirstName   *string     `json:"firstName" db:"first_name"`
	MidName     *string     `json:"midName,omitempty" db:"mid_name"`
	LastName    *string     `json:"lastName" db:"last_name"`
	State       *string     `json:"state" db:"state"`
	ProfileData ProfileData `json:"profileData" db:"profile_data"`
}
