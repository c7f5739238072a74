package models

import "testing"

func TestRoleName(t *testing.T) {
	cases := []struct {
		role Role
		want string
	}{
		{RoleStudent, "Student"},
		{RoleFaculty, "Faculty"},
		{RoleAdmin, "Admin"},
		{RoleEmployer, "Employer"},
		{RoleStateAdmin, "State Admin"},
		{Role(0), "User"},
		{Role(42), "User"},
	}
	for _, tc := range cases {
		if got := tc.role.Name(); got != tc.want {
			t.Errorf("Role(%d).Name() = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestRoleIsValid(t *testing.T) {
	for r := Role(1); r <= Role(5); r++ {
		if !r.IsValid() {
			t.Errorf("Role(%d) should be valid", r)
		}
	}
	if Role(0).IsValid() || Role(6).IsValid() {
		t.Error("roles outside 1-5 should be invalid")
	}
}

func TestProfileDataNestedString(t *testing.T) {
	data := ProfileData{
		"personal": map[string]interface{}{
			"mobileNumber": "9876543210",
			"age":          21,
		},
	}

	if got := data.NestedString("personal", "mobileNumber"); got != "9876543210" {
		t.Errorf("expected mobile number, got %q", got)
	}
	if got := data.NestedString("personal", "missing"); got != "" {
		t.Errorf("expected empty string for a missing key, got %q", got)
	}
	if got := data.NestedString("personal", "age"); got != "" {
		t.Errorf("expected empty string for a non-string leaf, got %q", got)
	}
	if got := data.NestedString("missing", "key"); got != "" {
		t.Errorf("expected empty string for a missing branch, got %q", got)
	}
	if got := ProfileData(nil).NestedString("any"); got != "" {
		t.Errorf("expected empty string on nil data, got %q", got)
	}
}
