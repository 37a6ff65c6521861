package models

// RoleAdmin is the role holding the administrator capability.
const RoleAdmin = "admin"

// Identity is the authenticated caller, resolved by the upstream gateway
// and passed explicitly into every workflow operation.
type Identity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// IsAdmin reports whether the identity holds the administrator capability.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
