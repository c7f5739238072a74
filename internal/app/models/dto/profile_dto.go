package dto

import "time"

// PublicProfileResponse is the role-agnostic profile lookup result.
type PublicProfileResponse struct {
	Basic   PublicBasicInfo `json:"basic"`
	Profile interface{}     `json:"profile,omitempty"`
}

type PublicBasicInfo struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	RoleID     int       `json:"role_id"`
	RoleName   string    `json:"role_name"`
	CreateTime time.Time `json:"create_time"`
}
