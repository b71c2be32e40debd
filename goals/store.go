package goals

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
// different user.
const notFoundMessage = "goal not found"

// Store is the ownership-scoped persistence interface for goals.
type Store interface {
	// List returns the owner's goals ordered by deadline ascending, then id
	// ascending as the deterministic tie-break.
	List(ctx context.Context, ownerID int64) ([]Goal, error)
	// Create inserts a goal owned by ownerID.
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Goal, error)
	// Get returns a NotFoundError when the id is absent or owned by another
	// user.
	Get(ctx context.Context, id, ownerID int64) (*Goal, error)
	// Update applies only the fields present in req and refreshes UpdatedAt.
	Update(ctx context.Context, goal *Goal, req UpdateRequest) (*Goal, error)
	// Delete removes the goal.
	Delete(ctx context.Context, goal *Goal) error
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline, category, created_at, updated_at`

func scanGoal(row pgx.Row) (*Goal, error) {
	var goal Goal
	var deadline time.Time
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount,
		&goal.CurrentAmount, &deadline, &goal.Category, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	goal.Deadline = dates.FromTime(deadline)
	return &goal, nil
}

func (s *PostgresStore) List(ctx context.Context, ownerID int64) ([]Goal, error) {
	query := `SELECT ` + goalColumns + `
	          FROM goals
	          WHERE user_id = $1
	          ORDER BY deadline ASC, id ASC`
	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list goals", err)
	}
	defer rows.Close()

	result := make([]Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan goal", err)
		}
		result = append(result, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list goals", err)
	}
	return result, nil
}

func (s *PostgresStore) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Goal, error) {
	query := `INSERT INTO goals (user_id, name, target_amount, current_amount, deadline, category)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + goalColumns
	goal, err := scanGoal(s.db.QueryRow(ctx, query,
		ownerID, req.Name, req.TargetAmount, req.CurrentAmount, req.Deadline.Time(), req.Category))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create goal", err)
	}
	return goal, nil
}

func (s *PostgresStore) Get(ctx context.Context, id, ownerID int64) (*Goal, error) {
	query := `SELECT ` + goalColumns + `
	          FROM goals
	          WHERE id = $1 AND user_id = $2`
	goal, err := scanGoal(s.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(notFoundMessage, nil)
		}
		return nil, apperror.NewDatabaseError("failed to get goal", err)
	}
	return goal, nil
}

func (s *PostgresStore) Update(ctx context.Context, goal *Goal, req UpdateRequest) (*Goal, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.TargetAmount != nil {
		add("target_amount", *req.TargetAmount)
	}
	if req.CurrentAmount != nil {
		add("current_amount", *req.CurrentAmount)
	}
	if req.Deadline != nil {
		add("deadline", req.Deadline.Time())
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if len(setClauses) == 0 {
		return goal, nil
	}
	add("updated_at", time.Now().UTC())

	args = append(args, goal.ID, goal.UserID)
	query := fmt.Sprintf(`UPDATE goals SET %s WHERE id = $%d AND user_id = $%d RETURNING `+goalColumns,
		strings.Join(setClauses, ", "), argID, argID+1)

	updated, err := scanGoal(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(notFoundMessage, nil)
		}
		return nil, apperror.NewDatabaseError("failed to update goal", err)
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, goal *Goal) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	if _, err := s.db.Exec(ctx, query, goal.ID, goal.UserID); err != nil {
		return apperror.NewDatabaseError("failed to delete goal", err)
	}
	return nil
}
