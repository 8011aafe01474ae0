// Package model defines the data models for the Monad Wordle backend.
package model

import "time"

// GameStatus is the lifecycle state of a game session.
// Transitions only move forward: playing -> won or playing -> lost.
type GameStatus string

const (
	StatusPlaying GameStatus = "playing"
	StatusWon     GameStatus = "won"
	StatusLost    GameStatus = "lost"
)

// MaxGuesses is the number of guesses a session allows before it is lost.
const MaxGuesses = 6

// WordLength is the fixed length of every dictionary word and guess.
const WordLength = 5

// User represents a player identified by their wallet address.
// Stats are mutated only at game-completion time, inside the same
// transaction that finishes the game.
type User struct {
	Address       string    `db:"address"`
	GamesPlayed   int       `db:"games_played"`
	GamesWon      int       `db:"games_won"`
	CurrentStreak int       `db:"current_streak"`
	MaxStreak     int       `db:"max_streak"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ApplyOutcome folds a finished game into the user's counters.
// A win extends the streak and may raise the historical maximum;
// a loss resets the streak and leaves the maximum untouched.
func (u *User) ApplyOutcome(won bool) {
	if won {
		u.GamesWon++
		u.CurrentStreak++
		if u.CurrentStreak > u.MaxStreak {
			u.MaxStreak = u.CurrentStreak
		}
		return
	}
	u.CurrentStreak = 0
}

// Game represents a single word-guessing session funded by one
// on-chain payment. The secret word is never serialized to clients
// while the status is still playing.
type Game struct {
	ID          string     `db:"id"`
	UserAddress string     `db:"user_address"`
	Secret      string     `db:"secret"`
	Guesses     []string   `db:"guesses"`
	Status      GameStatus `db:"status"`
	TxHash      string     `db:"tx_hash"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Finished reports whether the game has reached a terminal state.
func (g *Game) Finished() bool {
	return g.Status != StatusPlaying
}

// GuessesRemaining returns how many guesses the session still accepts.
func (g *Game) GuessesRemaining() int {
	return MaxGuesses - len(g.Guesses)
}

// Payment records a consumed transaction hash. A hash funds at most
// one game; the row is inserted in the same transaction that creates
// the game, so replay attempts fail on the primary key.
type Payment struct {
	TxHash     string    `db:"tx_hash"`
	Address    string    `db:"address"`
	ConsumedAt time.Time `db:"consumed_at"`
}

// LeaderboardEntry is one ranked row of the leaderboard view.
// Rank is dense and 1-based; WinRate is a rounded percentage.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Address       string `json:"address"`
	GamesPlayed   int    `json:"gamesPlayed"`
	GamesWon      int    `json:"gamesWon"`
	WinRate       int    `json:"winRate"`
	CurrentStreak int    `json:"currentStreak"`
	MaxStreak     int    `json:"maxStreak"`
}
