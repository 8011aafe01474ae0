// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Common errors for repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrGameNotFound = errors.New("game not found")
	// ErrEmptyDictionary is returned when a secret is requested but the
	// word table holds no entries.
	ErrEmptyDictionary = errors.New("word dictionary is empty")
	// ErrDuplicatePayment is returned when a transaction hash has
	// already funded a game.
	ErrDuplicatePayment = errors.New("transaction hash already used")
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx.
// Repositories are constructed against the pool and rebound to a
// transaction with WithTx for multi-step atomic operations.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
