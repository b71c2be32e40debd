package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/spendshift-go/apperror"
	"github.com/user/spendshift-go/dates"
)

// notFoundMessage covers both a genuinely absent row and a row owned by a
// different user; the two must not be distinguishable.
const notFoundMessage = "transaction not found"

// Store is the ownership-scoped persistence interface for transactions.
type Store interface {
	// List returns the owner's transactions ordered by date descending, then
	// id descending as the deterministic tie-break.
	List(ctx context.Context, ownerID int64) ([]Transaction, error)
	// Create inserts a transaction owned by ownerID.
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Transaction, error)
	// Get returns a NotFoundError when the id is absent or owned by another
	// user.
	Get(ctx context.Context, id, ownerID int64) (*Transaction, error)
	// Update applies only the fields present in req and refreshes UpdatedAt.
	Update(ctx context.Context, tx *Transaction, req UpdateRequest) (*Transaction, error)
	// Delete removes the transaction.
	Delete(ctx context.Context, tx *Transaction) error
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const transactionColumns = `id, user_id, description, amount, category, type, date, created_at, updated_at`

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var tx Transaction
	var date time.Time
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Description, &tx.Amount,
		&tx.Category, &tx.Type, &date, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	tx.Date = dates.FromTime(date)
	return &tx, nil
}

func (s *PostgresStore) List(ctx context.Context, ownerID int64) ([]Transaction, error) {
	query := `SELECT ` + transactionColumns + `
	          FROM transactions
	          WHERE user_id = $1
	          ORDER BY date DESC, id DESC`
	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list transactions", err)
	}
	defer rows.Close()

	result := make([]Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan transaction", err)
		}
		result = append(result, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list transactions", err)
	}
	return result, nil
}

func (s *PostgresStore) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Transaction, error) {
	query := `INSERT INTO transactions (user_id, description, amount, category, type, date)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + transactionColumns
	tx, err := scanTransaction(s.db.QueryRow(ctx, query,
		ownerID, req.Description, req.Amount, req.Category, string(req.Type), req.Date.Time()))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create transaction", err)
	}
	return tx, nil
}

func (s *PostgresStore) Get(ctx context.Context, id, ownerID int64) (*Transaction, error) {
	query := `SELECT ` + transactionColumns + `
	          FROM transactions
	          WHERE id = $1 AND user_id = $2`
	tx, err := scanTransaction(s.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(notFoundMessage, nil)
		}
		return nil, apperror.NewDatabaseError("failed to get transaction", err)
	}
	return tx, nil
}

func (s *PostgresStore) Update(ctx context.Context, tx *Transaction, req UpdateRequest) (*Transaction, error) {
	// Build the SET clause from only the fields present in the request, so
	// unset fields are left untouched.
	var setClauses []string
	var args []interface{}
	argID := 1

	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Amount != nil {
		add("amount", *req.Amount)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.Type != nil {
		add("type", string(*req.Type))
	}
	if req.Date != nil {
		add("date", req.Date.Time())
	}
	if len(setClauses) == 0 {
		return tx, nil
	}
	add("updated_at", time.Now().UTC())

	args = append(args, tx.ID, tx.UserID)
	query := fmt.Sprintf(`UPDATE transactions SET %s WHERE id = $%d AND user_id = $%d RETURNING `+transactionColumns,
		strings.Join(setClauses, ", "), argID, argID+1)

	updated, err := scanTransaction(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(notFoundMessage, nil)
		}
		return nil, apperror.NewDatabaseError("failed to update transaction", err)
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, tx *Transaction) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	if _, err := s.db.Exec(ctx, query, tx.ID, tx.UserID); err != nil {
		return apperror.NewDatabaseError("failed to delete transaction", err)
	}
	return nil
}
