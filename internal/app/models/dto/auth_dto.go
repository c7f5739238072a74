package dto

import "github.com/prashikshan/backend/internal/app/models"

// RegisterRequest carries the signup payload. Role-specific fields are
// validated in the service layer because requirements differ per role.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"firstname" binding:"required"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastname" binding:"required"`
	RoleID     int    `json:"roleId" binding:"required"`

	// Student fields
	CollegeID int64 `json:"collegeId"`

	// College admin fields; CollegeName is also accepted for students
	// and faculty
	CollegeName    string `json:"collegeName"`
	AISHECode      string `json:"aisheCode"`
	CollegeWebsite string `json:"collegeWebsite"`

	// Employer fields
	CompanyName    string `json:"companyName"`
	CompanyWebsite string `json:"companyWebsite"`
	GSTNumber      string `json:"gstNumber"`

	// State admin fields
	State string `json:"state"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Message      string      `json:"message"`
	UserID       int64       `json:"userId"`
	RoleName     string      `json:"roleName"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	Profile      interface{} `json:"profile,omitempty"`
}

// RoleInfo pairs a role id with its display name.
type RoleInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MeResponse describes the authenticated user.
type MeResponse struct {
	ID      int64                `json:"id"`
	Email   string               `json:"email"`
	Role    RoleInfo             `json:"role"`
	Profile interface{}          `json:"profile,omitempty"`
	Status  models.StudentStatus `json:"status,omitempty"`
}
