package dto

import "github.com/prashikshan/backend/internal/app/models"

// EmployerProfileResponse joins the employer account with its profile row.
type EmployerProfileResponse struct {
	ID          int64              `json:"id"`
	Email       string             `json:"email"`
	FirstName   *string            `json:"firstName"`
	LastName    *string            `json:"lastName"`
	CompanyName *string            `json:"companyName"`
	GSTNumber   *string            `json:"gstNumber"`
	ProfileData models.ProfileData `json:"profileData,omitempty"`
}

// UpdateEmployerProfileRequest merges scalar columns and free-form
// profile data. Keys in Profile overwrite existing profile_data keys;
// keys absent from Profile are preserved.
type UpdateEmployerProfileRequest struct {
	FirstName   *string            `json:"firstName"`
	LastName    *string            `json:"lastName"`
	CompanyName *string            `json:"companyName"`
	GSTNumber   *string            `json:"gstNumber"`
	Profile     models.ProfileData `json:"profile"`
}
