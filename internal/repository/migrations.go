package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// migrations are applied in order; every statement is idempotent so
// re-running on an already-migrated database is a no-op.
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "users table",
		sql: `
		CREATE TABLE IF NOT EXISTS users (
			address TEXT PRIMARY KEY,
			games_played INT NOT NULL DEFAULT 0,
			games_won INT NOT NULL DEFAULT 0,
			current_streak INT NOT NULL DEFAULT 0,
			max_streak INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_users_ranking ON users (games_won DESC, max_streak DESC);
	`,
	},
	{
		name: "payments table",
		sql: `
		CREATE TABLE IF NOT EXISTS payments (
			tx_hash TEXT PRIMARY KEY,
			address TEXT NOT NULL,
			consumed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`,
	},
	{
		name: "games table",
		sql: `
		CREATE TABLE IF NOT EXISTS games (
			id UUID PRIMARY KEY,
			user_address TEXT NOT NULL REFERENCES users(address),
			secret TEXT NOT NULL,
			guesses TEXT[] NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'playing',
			tx_hash TEXT NOT NULL UNIQUE REFERENCES payments(tx_hash),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_games_user ON games(user_address, created_at DESC);
	`,
	},
	{
		name: "words table",
		sql: `
		CREATE TABLE IF NOT EXISTS words (
			text TEXT PRIMARY KEY
		);
	`,
	},
}

// Migrate applies the database schema. Shared by the server entrypoint
// and the integration test harness.
func Migrate(ctx context.Context, q Querier) error {
	for _, m := range migrations {
		if _, err := q.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %q failed: %w", m.name, err)
		}
		log.Debug().Str("migration", m.name).Msg("Migration applied")
	}
	return nil
}
