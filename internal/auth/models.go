// internal/auth/models.go

package auth

import "time"

// Role is a user's role in the marketplace.
type Role string

const (
	RoleHost       Role = "host"
	RoleNanny      Role = "nanny"
	RoleMatchmaker Role = "matchmaker"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleHost, RoleNanny, RoleMatchmaker:
		return true
	}
	return false
}

// User is an authenticated account. ProfileID points at the user's Host
// or Nanny record; matchmakers have none.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ProfileID    string    `json:"profile_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity carried in request context.
type Principal struct {
	UserID    string
	Role      Role
	ProfileID string
}
