package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"monad-wordle/internal/model"
)

const gameColumns = `id, user_address, secret, guesses, status, tx_hash, created_at, updated_at`

// GameRepository handles game session persistence.
type GameRepository struct {
	db Querier
}

// NewGameRepository creates a new GameRepository instance.
func NewGameRepository(db Querier) *GameRepository {
	return &GameRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *GameRepository) WithTx(tx pgx.Tx) *GameRepository {
	return &GameRepository{db: tx}
}

func scanGame(row pgx.Row) (*model.Game, error) {
	var g model.Game
	var status string
	err := row.Scan(
		&g.ID,
		&g.UserAddress,
		&g.Secret,
		&g.Guesses,
		&status,
		&g.TxHash,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Status = model.GameStatus(status)
	if g.Guesses == nil {
		g.Guesses = []string{}
	}
	return &g, nil
}

// Create inserts a new game session in the playing state.
func (r *GameRepository) Create(ctx context.Context, g *model.Game) error {
	const query = `
		INSERT INTO games (id, user_address, secret, guesses, status, tx_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		g.ID, g.UserAddress, g.Secret, g.Guesses, string(g.Status), g.TxHash,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by its session ID.
// Returns ErrGameNotFound if no such session exists. A malformed ID is
// treated as not found rather than a query error, since the id column
// is a UUID.
func (r *GameRepository) GetByID(ctx context.Context, id string) (*model.Game, error) {
	const query = `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrGameNotFound
	}

	game, err := scanGame(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByIDForUpdate retrieves a game and takes a row lock on it, so a
// concurrent guess against the same session blocks until this
// transaction commits. Only meaningful on a transaction-bound
// repository.
func (r *GameRepository) GetByIDForUpdate(ctx context.Context, id string) (*model.Game, error) {
	const query = `SELECT ` + gameColumns + ` FROM games WHERE id = $1 FOR UPDATE`

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrGameNotFound
	}

	game, err := scanGame(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game for update: %w", err)
	}

	return game, nil
}

// UpdateProgress writes the guess list and status after an accepted
// guess. Called from the same transaction that holds the row lock.
func (r *GameRepository) UpdateProgress(ctx context.Context, g *model.Game) error {
	const query = `
		UPDATE games
		SET guesses = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, g.ID, g.Guesses, string(g.Status))
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}

	return nil
}

// ListByUser retrieves a user's games, newest first.
func (r *GameRepository) ListByUser(ctx context.Context, address string, limit int) ([]*model.Game, error) {
	const query = `
		SELECT ` + gameColumns + `
		FROM games
		WHERE user_address = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, address, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*model.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}
