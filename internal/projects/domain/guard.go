package domain

// Role is a caller's relationship to a single project, re-derived from
// current project state on every request and never cached on the session.
type Role string

const (
	RoleManager Role = "manager"
	RoleMember  Role = "member"
	RoleNone    Role = "none"
)

// RoleFor derives the caller's role on a project. Manager wins over
// membership, so exactly one role is ever returned.
func RoleFor(userID string, p *Project) Role {
	if p.ManagerID == userID {
		return RoleManager
	}
	for _, id := range p.MemberIDs {
		if id == userID {
			return RoleMember
		}
	}
	return RoleNone
}

// Involved reports whether the role grants read access to the project.
func (r Role) Involved() bool {
	return r == RoleManager || r == RoleMember
}
