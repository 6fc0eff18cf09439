package models

import "fmt"

// Role is the privilege tier attached to a user. Roles are strictly ordered:
// every capability granted to a role is also granted to all higher roles.
type Role string

const (
	RoleFarmer  Role = "FARMER"
	RoleOfficer Role = "OFFICER"
	RoleAdmin   Role = "ADMIN"
)

// roleRank orders roles by privilege. Unknown roles rank below everything.
var roleRank = map[Role]int{
	RoleFarmer:  1,
	RoleOfficer: 2,
	RoleAdmin:   3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Meets reports whether r carries at least the privilege of floor.
func (r Role) Meets(floor Role) bool {
	return roleRank[r] >= roleRank[floor] && roleRank[r] > 0
}

// ParseRole converts a request-supplied string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q (expected FARMER, OFFICER or ADMIN)", s)
	}
	return r, nil
}
