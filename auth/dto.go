// Data transfer objects for the auth endpoints. Validation constraints live
// as struct tags and are enforced by the validation package after decoding.
package auth

import "time"

// RegisterRequest is the registration payload. The six-character password
// minimum is API policy; the hasher itself accepts any length.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email" example:"user@example.com"`
	Password string  `json:"password" validate:"required,min=6" example:"secret1"`
	FullName *string `json:"full_name,omitempty" example:"Jane Doe"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"user@example.com"`
	FullName  *string   `json:"full_name,omitempty" example:"Jane Doe"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
}
