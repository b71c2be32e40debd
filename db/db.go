// Package db provides database connectivity for the spendshift application.
// It establishes the pgx connection pool used by every store and bootstraps
// the schema at startup. Schema changes are plain idempotent DDL; there is no
// migration tooling in this system.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/spendshift-go/apperror"
	"github.com/user/spendshift-go/config"
)

// NewDBPool establishes a connection pool to PostgreSQL using the provided
// configuration. The pool is configured with a bounded size, idle timeout and
// connection lifetime, and the connection is verified with a ping before the
// pool is handed to the caller.
func NewDBPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable&pool_max_conns=%d",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.MaxSize,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Bound pool creation so an unreachable database fails fast instead of
	// hanging startup.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to database %s", cfg.DBName), err)
	}

	return pool, nil
}

// schemaStatements creates the three tables the application owns. Every
// statement is idempotent so running them on every startup is safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		full_name TEXT,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		description TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		category TEXT NOT NULL,
		type TEXT NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_user_date_idx
		ON transactions (user_id, date DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		target_amount DOUBLE PRECISION NOT NULL,
		current_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		deadline DATE NOT NULL,
		category TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS goals_user_deadline_idx
		ON goals (user_id, deadline ASC, id ASC)`,
}

// EnsureSchema creates the application tables if they do not exist yet.
func EnsureSchema(pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := pool.Exec(ctx, stmt)
		cancel()
		if err != nil {
			return apperror.NewDatabaseError("failed to ensure schema", err)
		}
	}
	return nil
}
