package models

import "testing"

func TestRoleMeets(t *testing.T) {
	tests := []struct {
		role  Role
		floor Role
		want  bool
	}{
		{RoleFarmer, RoleFarmer, true},
		{RoleFarmer, RoleOfficer, false},
		{RoleFarmer, RoleAdmin, false},
		{RoleOfficer, RoleFarmer, true},
		{RoleOfficer, RoleOfficer, true},
		{RoleOfficer, RoleAdmin, false},
		{RoleAdmin, RoleFarmer, true},
		{RoleAdmin, RoleAdmin, true},
		{Role("GUEST"), RoleFarmer, false},
		{Role(""), RoleFarmer, false},
	}
	for _, tt := range tests {
		if got := tt.role.Meets(tt.floor); got != tt.want {
			t.Errorf("%s.Meets(%s) = %v, want %v", tt.role, tt.floor, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"FARMER", "OFFICER", "ADMIN"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q) returned error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "farmer", "SUPERUSER"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q) should fail", invalid)
		}
	}
}
