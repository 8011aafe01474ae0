package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"monad-wordle/internal/model"
)

const userColumns = `address, games_played, games_won, current_streak, max_streak, created_at, updated_at`

// UserRepository handles player data persistence. Users are created on
// first payment and never deleted; their stat counters are only
// written by game-completion transactions.
type UserRepository struct {
	db Querier
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.Address,
		&u.GamesPlayed,
		&u.GamesWon,
		&u.CurrentStreak,
		&u.MaxStreak,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByAddress retrieves a user by their wallet address.
// Returns ErrUserNotFound if the user does not exist.
func (r *UserRepository) GetByAddress(ctx context.Context, address string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE address = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, address))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByAddressForUpdate retrieves a user and takes a row lock, so
// concurrent stat updates for the same player (two of their games
// finishing at once) serialize. Only meaningful on a transaction-bound
// repository.
func (r *UserRepository) GetByAddressForUpdate(ctx context.Context, address string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE address = $1 FOR UPDATE`

	user, err := scanUser(r.db.QueryRow(ctx, query, address))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user for update: %w", err)
	}

	return user, nil
}

// GetOrCreate retrieves a user by address, creating one with zeroed
// stat counters if it doesn't exist. Returns the user and whether it
// was newly created. The insert uses ON CONFLICT DO NOTHING so losing
// a creation race never errors the statement, which matters inside a
// transaction: a failed INSERT would abort the whole transaction and
// no fallback SELECT could run on it.
func (r *UserRepository) GetOrCreate(ctx context.Context, address string) (*model.User, bool, error) {
	const query = `
		INSERT INTO users (address, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (address) DO NOTHING
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, address))
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	// Conflict: the row already exists, possibly inserted by a
	// concurrent request that has committed by now.
	user, err = r.GetByAddress(ctx, address)
	if err != nil {
		return nil, false, err
	}

	return user, false, nil
}

// IncrementGamesPlayed bumps the games-played counter. Called from the
// game-creation transaction.
func (r *UserRepository) IncrementGamesPlayed(ctx context.Context, address string) error {
	const query = `
		UPDATE users
		SET games_played = games_played + 1, updated_at = NOW()
		WHERE address = $1
	`

	tag, err := r.db.Exec(ctx, query, address)
	if err != nil {
		return fmt.Errorf("failed to increment games played: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateStats writes the user's outcome counters. Called from the same
// transaction that moves a game into a terminal state, so the stats
// can never diverge from recorded outcomes.
func (r *UserRepository) UpdateStats(ctx context.Context, user *model.User) error {
	const query = `
		UPDATE users
		SET games_won = $2, current_streak = $3, max_streak = $4, updated_at = NOW()
		WHERE address = $1
	`

	tag, err := r.db.Exec(ctx, query, user.Address, user.GamesWon, user.CurrentStreak, user.MaxStreak)
	if err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ListTop retrieves users ordered for the leaderboard: games won
// descending, then max streak as the tie-break.
func (r *UserRepository) ListTop(ctx context.Context, limit int) ([]*model.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY games_won DESC, max_streak DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
