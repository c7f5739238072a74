package models

// Role is the numeric role selector stored in the register table
type Role int

const (
	RoleStudent    Role = 1
	RoleFaculty    Role = 2
	RoleAdmin      Role = 3
	RoleEmployer   Role = 4
	RoleStateAdmin Role = 5
)

// roleNames maps role selectors to their display names
var roleNames = map[Role]string{
	RoleStudent:    "Student",
	RoleFaculty:    "Faculty",
	RoleAdmin:      "Admin",
	RoleEmployer:   "Employer",
	RoleStateAdmin: "State Admin",
}

// Name returns the display name for a role, or "User" for unknown values
func (r Role) Name() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "User"
}

// IsValid reports whether the role selector is within 1-5
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// StudentStatus is the approval status of a student's college link request
type StudentStatus string

const (
	StatusPending  StudentStatus = "pending"
	StatusApproved StudentStatus = "approved"
	StatusRejected StudentStatus = "rejected"
)

// ProfileData is the open-ended JSONB extension document attached to every
// role profile row, used for fields not promoted to columns.
type ProfileData map[string]interface{}

// NestedString walks a key path through nested objects and returns the string
// leaf, or "" when any step is missing or of the wrong shape.
func (p ProfileData) NestedString(keys ...string) string {
	var current interface{} = map[string]interface{}(p)
	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current, ok = m[key]
		if !ok {
			return ""
		}
	}
	s, _ := current.(string)
	return s
}
