// internal/app/system/authz/roles.go
package authz

// Role is one of the three stored user roles.
type Role string

const (
	RoleMember      Role = "member"
	RoleClubManager Role = "clubManager"
	RoleAdmin       Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleMember, RoleClubManager, RoleAdmin}

// ParseRole returns the Role named by s. Matching is exact.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleClubManager, RoleAdmin:
		return true
	}
	return false
}

// Satisfies reports whether a user holding r meets a requirement of
// required. Admin meets every requirement; clubManager meets manager and
// member requirements; member meets only member requirements. Invalid roles
// meet nothing.
func (r Role) Satisfies(required Role) bool {
	if !r.Valid() || !required.Valid() {
		return false
	}
	switch required {
	case RoleAdmin:
		return r == RoleAdmin
	case RoleClubManager:
		return r == RoleClubManager || r == RoleAdmin
	default:
		return true
	}
}

// IsAdmin reports whether r is admin.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsManagerOrAdmin reports whether r may act as a club manager.
func (r Role) IsManagerOrAdmin() bool { return r.Satisfies(RoleClubManager) }
