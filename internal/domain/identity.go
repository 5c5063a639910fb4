package domain

// Role is resolved once at the HTTP boundary from the bearer token
type Role string

const (
	RoleParticipant Role = "PARTICIPANT"
	RoleAdmin       Role = "ADMIN"
)

// Identity is the typed caller identity the core trusts. Services perform
// their own authorization checks against it per call.
type Identity struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
