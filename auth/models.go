package auth

import "time"

// User represents a registered account. HashedPassword stores the PBKDF2
// credential string, never plaintext, and is excluded from JSON output.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FullName       *string   `json:"full_name,omitempty"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts the user to its API representation.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}
