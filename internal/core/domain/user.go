package domain

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models an account in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the verified identity attached to a request after token
// verification. Its fields come straight from the token claims, so a role
// change only takes effect after re-login.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanMutate reports whether the principal may mutate a record owned by
// ownerID: owners and administrators may, everyone else may not.
func (p Principal) CanMutate(ownerID string) bool {
	return p.IsAdmin() || p.ID == ownerID
}
