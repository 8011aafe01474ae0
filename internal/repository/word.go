package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// WordRepository handles the five-letter word dictionary. The table is
// read-mostly: seeding is an administrative operation, lookups and the
// random secret draw are the hot path.
type WordRepository struct {
	db Querier
}

// NewWordRepository creates a new WordRepository instance.
func NewWordRepository(db Querier) *WordRepository {
	return &WordRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *WordRepository) WithTx(tx pgx.Tx) *WordRepository {
	return &WordRepository{db: tx}
}

// Seed inserts the given words, skipping any already present, and
// returns the number actually inserted. Re-seeding with a fully
// present list returns 0. Words must be normalized lowercase
// five-letter strings; anything else is rejected up front.
func (r *WordRepository) Seed(ctx context.Context, words []string) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	const query = `
		INSERT INTO words (text)
		SELECT DISTINCT w FROM unnest($1::text[]) AS w
		ON CONFLICT (text) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, words)
	if err != nil {
		return 0, fmt.Errorf("failed to seed words: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// Exists reports whether the word is in the dictionary. The caller
// passes a normalized lowercase word, which makes the lookup an exact
// case-insensitive match.
func (r *WordRepository) Exists(ctx context.Context, word string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM words WHERE text = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, word).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check word existence: %w", err)
	}

	return exists, nil
}

// PickRandom draws one word uniformly at random from the dictionary.
// Returns ErrEmptyDictionary when no words have been seeded.
func (r *WordRepository) PickRandom(ctx context.Context) (string, error) {
	const query = `SELECT text FROM words ORDER BY random() LIMIT 1`

	var word string
	err := r.db.QueryRow(ctx, query).Scan(&word)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrEmptyDictionary
		}
		return "", fmt.Errorf("failed to pick random word: %w", err)
	}

	return word, nil
}

// Count returns the number of words in the dictionary.
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM words`

	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}

	return count, nil
}
