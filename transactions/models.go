// Package transactions implements income/expense records: the data model,
// the ownership-scoped store, and the HTTP endpoints. Every operation is
// filtered by the authenticated user's id; a row owned by someone else is
// indistinguishable from a row that does not exist.
package transactions

import (
	"time"

	"github.com/user/spendshift-go/dates"
)

// Type classifies a transaction as money in or money out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction is a single income or expense record owned by one user.
type Transaction struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Type        Type       `json:"type"`
	Date        dates.Date `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateRequest is the payload for creating a transaction. Ownership is not
// part of the payload; it is assigned from the authenticated user and cannot
// be set or changed by clients.
type CreateRequest struct {
	Description string     `json:"description" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Category    string     `json:"category" validate:"required"`
	Type        Type       `json:"type" validate:"required,oneof=income expense"`
	Date        dates.Date `json:"date" validate:"required"`
}

// UpdateRequest is the payload for a partial update. Pointer fields
// distinguish "leave untouched" (nil) from an explicit new value.
type UpdateRequest struct {
	Description *string     `json:"description,omitempty" validate:"omitempty,min=1"`
	Amount      *float64    `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Category    *string     `json:"category,omitempty" validate:"omitempty,min=1"`
	Type        *Type       `json:"type,omitempty" validate:"omitempty,oneof=income expense"`
	Date        *dates.Date `json:"date,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (r UpdateRequest) IsEmpty() bool {
	return r.Description == nil && r.Amount == nil && r.Category == nil &&
		r.Type == nil && r.Date == nil
}
