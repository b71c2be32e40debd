package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/spendshift-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// UserStore persists user accounts. The pgx implementation below backs
// production; tests substitute an in-memory implementation.
type UserStore interface {
	// CreateUser inserts a new user and fills in ID and CreatedAt. A duplicate
	// email yields a ConflictError.
	CreateUser(ctx context.Context, user *User) (*User, error)
	// GetUserByEmail returns a NotFoundError when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByID returns a NotFoundError when the id is unknown.
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// PostgresUserStore implements UserStore on a pgx connection pool.
type PostgresUserStore struct {
	db *pgxpool.Pool
}

// NewPostgresUserStore creates a PostgresUserStore.
func NewPostgresUserStore(db *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (email, full_name, password)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, user.Email, user.FullName, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation &&
			strings.Contains(pgErr.ConstraintName, "email") {
			return nil, apperror.NewConflictError("email already registered", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, full_name, password, created_at
	          FROM users WHERE email = $1`
	var user User
	err := s.db.QueryRow(ctx, query, strings.ToLower(email)).
		Scan(&user.ID, &user.Email, &user.FullName, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) GetUserByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, email, full_name, password, created_at
	          FROM users WHERE id = $1`
	var user User
	err := s.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.FullName, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by id", err)
	}
	return &user, nil
}
