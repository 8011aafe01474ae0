package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"monad-wordle/internal/game/wordle"
	"monad-wordle/internal/model"
	"monad-wordle/internal/pkg/db"
	"monad-wordle/internal/pkg/lock"
	"monad-wordle/internal/repository"
)

// PaymentVerifier confirms that a transaction hash proves a game-fee
// payment from the given address. Implementations may block on chain
// reads; they are always called with a cancellable context and never
// inside a database transaction.
type PaymentVerifier interface {
	Verify(ctx context.Context, address, txHash string) error
}

// GuessResult is the outcome of one accepted guess.
type GuessResult struct {
	Feedback         []wordle.Feedback `json:"result"`
	Status           model.GameStatus  `json:"status"`
	GuessesRemaining int               `json:"guessesRemaining"`
}

// GameState is the full client view of a session. Secret is empty
// while the game is still playing.
type GameState struct {
	GameID           string              `json:"gameId"`
	Status           model.GameStatus    `json:"status"`
	Guesses          []string            `json:"guesses"`
	Feedback         [][]wordle.Feedback `json:"results"`
	GuessesRemaining int                 `json:"guessesRemaining"`
	Secret           string              `json:"word,omitempty"`
}

// GameSummary is one row of a player's game history. The secret is
// deliberately absent so history reads can never leak a live word.
type GameSummary struct {
	GameID    string           `json:"gameId"`
	Status    model.GameStatus `json:"status"`
	Guesses   int              `json:"guesses"`
	CreatedAt time.Time        `json:"createdAt"`
}

// GameService owns the game lifecycle: payment-gated creation, guess
// submission and state reads.
type GameService struct {
	pool     *db.Pool
	users    *repository.UserRepository
	games    *repository.GameRepository
	words    *repository.WordRepository
	payments *repository.PaymentRepository
	verifier PaymentVerifier
	locks    *lock.SessionLock
}

// NewGameService creates a new GameService instance.
func NewGameService(
	pool *db.Pool,
	users *repository.UserRepository,
	games *repository.GameRepository,
	words *repository.WordRepository,
	payments *repository.PaymentRepository,
	verifier PaymentVerifier,
) *GameService {
	return &GameService{
		pool:     pool,
		users:    users,
		games:    games,
		words:    words,
		payments: payments,
		verifier: verifier,
		locks:    lock.NewSessionLock(),
	}
}

// CreateGame verifies the payment proof and creates a session in one
// transaction: consume the hash, resolve the user, draw a secret,
// insert the game, bump games played. Concurrent calls with the same
// hash race on the payments primary key, so exactly one succeeds and
// the rest fail with ErrDuplicatePayment. Returns the new game ID.
func (s *GameService) CreateGame(ctx context.Context, address, txHash string) (string, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	txHash = strings.ToLower(strings.TrimSpace(txHash))

	if err := s.verifier.Verify(ctx, address, txHash); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPaymentRejected, err)
	}

	gameID := uuid.NewString()

	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.payments.WithTx(tx).Consume(ctx, txHash, address); err != nil {
			return err
		}

		if _, _, err := s.users.WithTx(tx).GetOrCreate(ctx, address); err != nil {
			return err
		}

		secret, err := s.words.WithTx(tx).PickRandom(ctx)
		if err != nil {
			return err
		}

		game := &model.Game{
			ID:          gameID,
			UserAddress: address,
			Secret:      secret,
			Guesses:     []string{},
			Status:      model.StatusPlaying,
			TxHash:      txHash,
		}
		if err := s.games.WithTx(tx).Create(ctx, game); err != nil {
			return err
		}

		return s.users.WithTx(tx).IncrementGamesPlayed(ctx, address)
	})
	if err != nil {
		return "", err
	}

	log.Info().
		Str("game_id", gameID).
		Str("address", address).
		Str("tx_hash", txHash).
		Msg("Game created")

	return gameID, nil
}

// SubmitGuess validates and applies a guess. The session lock plus the
// row lock inside the transaction serialize concurrent guesses against
// the same game; acceptance order defines guess order. When the guess
// finishes the game, the player's stats change in the same transaction
// as the status flip.
func (s *GameService) SubmitGuess(ctx context.Context, gameID, rawGuess string) (*GuessResult, error) {
	var result *GuessResult

	err := s.locks.WithLock(gameID, func() error {
		return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
			game, err := s.games.WithTx(tx).GetByIDForUpdate(ctx, gameID)
			if err != nil {
				return err
			}
			if game.Finished() {
				return ErrGameAlreadyFinished
			}

			guess := wordle.Normalize(rawGuess)
			if len(guess) != model.WordLength {
				return ErrInvalidGuessLength
			}
			known, err := s.words.WithTx(tx).Exists(ctx, guess)
			if err != nil {
				return err
			}
			if !known {
				return ErrUnknownWord
			}

			game.Guesses = append(game.Guesses, guess)
			feedback := wordle.Evaluate(guess, game.Secret)

			won := guess == game.Secret
			lost := !won && len(game.Guesses) >= model.MaxGuesses
			switch {
			case won:
				game.Status = model.StatusWon
			case lost:
				game.Status = model.StatusLost
			}

			if err := s.games.WithTx(tx).UpdateProgress(ctx, game); err != nil {
				return err
			}

			if won || lost {
				users := s.users.WithTx(tx)
				user, err := users.GetByAddressForUpdate(ctx, game.UserAddress)
				if err != nil {
					return err
				}
				user.ApplyOutcome(won)
				if err := users.UpdateStats(ctx, user); err != nil {
					return err
				}
			}

			result = &GuessResult{
				Feedback:         feedback,
				Status:           game.Status,
				GuessesRemaining: game.GuessesRemaining(),
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			s.locks.Forget(gameID)
		}
		return nil, err
	}

	if result.Status != model.StatusPlaying {
		s.locks.Forget(gameID)
		log.Info().
			Str("game_id", gameID).
			Str("status", string(result.Status)).
			Msg("Game finished")
	}

	return result, nil
}

// GetState returns the client view of a session. Feedback for past
// guesses is recomputed from the evaluator rather than stored, so a
// scoring fix is reflected in history reads. The secret is included
// only once the game has reached a terminal state.
func (s *GameService) GetState(ctx context.Context, gameID string) (*GameState, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	feedback := make([][]wordle.Feedback, len(game.Guesses))
	for i, guess := range game.Guesses {
		feedback[i] = wordle.Evaluate(guess, game.Secret)
	}

	state := &GameState{
		GameID:           game.ID,
		Status:           game.Status,
		Guesses:          game.Guesses,
		Feedback:         feedback,
		GuessesRemaining: game.GuessesRemaining(),
	}
	if game.Finished() {
		state.Secret = game.Secret
	}

	return state, nil
}

// defaultHistoryLimit caps a game-history read when the caller does
// not ask for a specific page size.
const defaultHistoryLimit = 50

// ListUserGames returns a player's recent sessions, newest first.
// A non-positive limit falls back to the default, it never reaches the
// query.
func (s *GameService) ListUserGames(ctx context.Context, address string, limit int) ([]GameSummary, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	games, err := s.games.ListByUser(ctx, address, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, GameSummary{
			GameID:    g.ID,
			Status:    g.Status,
			Guesses:   len(g.Guesses),
			CreatedAt: g.CreatedAt,
		})
	}

	return summaries, nil
}
