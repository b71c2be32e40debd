// Package goals implements savings goals: the data model, the
// ownership-scoped store, and the HTTP endpoints. Like transactions, every
// operation is filtered by the authenticated user's id.
package goals

import (
	"time"

	"github.com/user/spendshift-go/dates"
)

// Goal is a savings target owned by one user. CurrentAmount tracks progress
// toward TargetAmount ahead of the Deadline.
type Goal struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	Deadline      dates.Date `json:"deadline"`
	Category      *string    `json:"category,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateRequest is the payload for creating a goal. CurrentAmount defaults to
// zero when omitted; ownership is assigned from the authenticated user.
type CreateRequest struct {
	Name          string     `json:"name" validate:"required"`
	TargetAmount  float64    `json:"target_amount" validate:"required,gt=0"`
	CurrentAmount float64    `json:"current_amount" validate:"gte=0"`
	Deadline      dates.Date `json:"deadline" validate:"required"`
	Category      *string    `json:"category,omitempty"`
}

// UpdateRequest is the payload for a partial update; nil fields stay
// untouched.
type UpdateRequest struct {
	Name          *string     `json:"name,omitempty" validate:"omitempty,min=1"`
	TargetAmount  *float64    `json:"target_amount,omitempty" validate:"omitempty,gt=0"`
	CurrentAmount *float64    `json:"current_amount,omitempty" validate:"omitempty,gte=0"`
	Deadline      *dates.Date `json:"deadline,omitempty"`
	Category      *string     `json:"category,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (r UpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.TargetAmount == nil && r.CurrentAmount == nil &&
		r.Deadline == nil && r.Category == nil
}
