// internal/auth/dto.go

package auth

// SignupRequest registers a new account. ProfileID links the account to
// an existing Host or Nanny record and is required for those roles.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      string `json:"role" validate:"required,oneof=host nanny matchmaker"`
	ProfileID string `json:"profile_id" validate:"required_unless=Role matchmaker"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}
