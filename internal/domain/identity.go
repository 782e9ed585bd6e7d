package domain

// Role is the privilege level of a user account.
type Role string

const (
	// RoleAdmin may mutate any resource.
	RoleAdmin Role = "admin"
	// RoleUser is the default role assigned on registration.
	RoleUser Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Identity is the authenticated caller of a single request. It is decoded
// from a bearer token and never persisted.
type Identity struct {
	SubjectID int64
	Role      Role
}

// IsPrivileged reports whether the identity may act on resources it does not own.
func (i Identity) IsPrivileged() bool {
	return i.Role == RoleAdmin
}

// CanModify reports whether the identity may mutate a resource owned by ownerID.
func (i Identity) CanModify(ownerID int64) bool {
	return i.SubjectID == ownerID || i.IsPrivileged()
}
