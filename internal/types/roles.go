package types

// Role is a membership role within a project. The set is closed: every
// authorization check matches against these three values only.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleMember:
		return Role(s), true
	}
	return "", false
}

// Assignable reports whether the role may be granted through membership
// management. Owner is assigned only at project creation.
func (r Role) Assignable() bool {
	return r == RoleAdmin || r == RoleMember
}

// CanManageProject reports whether the role may update or delete the project.
func (r Role) CanManageProject() bool {
	return r == RoleOwner || r == RoleAdmin
}
