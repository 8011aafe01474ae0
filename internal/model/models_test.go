package model

import (
	"testing"

	"pgregory.net/rapid"
)

// TestApplyOutcome tests how single game results fold into the counters.
func TestApplyOutcome(t *testing.T) {
	tests := []struct {
		name     string
		before   User
		won      bool
		expected User
	}{
		{
			"first win starts a streak",
			User{GamesPlayed: 1},
			true,
			User{GamesPlayed: 1, GamesWon: 1, CurrentStreak: 1, MaxStreak: 1},
		},
		{
			"win extends the streak and the maximum",
			User{GamesPlayed: 3, GamesWon: 2, CurrentStreak: 2, MaxStreak: 2},
			true,
			User{GamesPlayed: 3, GamesWon: 3, CurrentStreak: 3, MaxStreak: 3},
		},
		{
			"win below the historical maximum leaves it alone",
			User{GamesPlayed: 5, GamesWon: 3, CurrentStreak: 0, MaxStreak: 3},
			true,
			User{GamesPlayed: 5, GamesWon: 4, CurrentStreak: 1, MaxStreak: 3},
		},
		{
			"loss resets the streak but keeps the maximum",
			User{GamesPlayed: 4, GamesWon: 3, CurrentStreak: 3, MaxStreak: 3},
			false,
			User{GamesPlayed: 4, GamesWon: 3, CurrentStreak: 0, MaxStreak: 3},
		},
		{
			"loss with no streak changes nothing",
			User{GamesPlayed: 2, GamesWon: 0, CurrentStreak: 0, MaxStreak: 0},
			false,
			User{GamesPlayed: 2, GamesWon: 0, CurrentStreak: 0, MaxStreak: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.before
			u.ApplyOutcome(tt.won)
			if u.GamesWon != tt.expected.GamesWon ||
				u.CurrentStreak != tt.expected.CurrentStreak ||
				u.MaxStreak != tt.expected.MaxStreak ||
				u.GamesPlayed != tt.expected.GamesPlayed {
				t.Errorf("ApplyOutcome(%v) = %+v, want %+v", tt.won, u, tt.expected)
			}
		})
	}
}

// TestApplyOutcomeFoldProperty tests that folding any sequence of game
// outcomes yields counters consistent with direct computation over the
// sequence: wins counted, current streak is the trailing run of wins,
// max streak is the longest run anywhere.
func TestApplyOutcomeFoldProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		outcomes := rapid.SliceOfN(rapid.Bool(), 0, 50).Draw(t, "outcomes")

		var u User
		for _, won := range outcomes {
			u.ApplyOutcome(won)
		}

		wins := 0
		currentRun := 0
		longestRun := 0
		for _, won := range outcomes {
			if won {
				wins++
				currentRun++
				if currentRun > longestRun {
					longestRun = currentRun
				}
			} else {
				currentRun = 0
			}
		}

		if u.GamesWon != wins {
			t.Fatalf("GamesWon = %d, want %d (outcomes=%v)", u.GamesWon, wins, outcomes)
		}
		if u.CurrentStreak != currentRun {
			t.Fatalf("CurrentStreak = %d, want %d (outcomes=%v)", u.CurrentStreak, currentRun, outcomes)
		}
		if u.MaxStreak != longestRun {
			t.Fatalf("MaxStreak = %d, want %d (outcomes=%v)", u.MaxStreak, longestRun, outcomes)
		}
		if u.MaxStreak < u.CurrentStreak {
			t.Fatalf("MaxStreak %d below CurrentStreak %d", u.MaxStreak, u.CurrentStreak)
		}
	})
}

// TestGameFinished tests terminal state detection.
func TestGameFinished(t *testing.T) {
	tests := []struct {
		status   GameStatus
		expected bool
	}{
		{StatusPlaying, false},
		{StatusWon, true},
		{StatusLost, true},
	}

	for _, tt := range tests {
		g := Game{Status: tt.status}
		if g.Finished() != tt.expected {
			t.Errorf("Finished() with status %q = %v, want %v", tt.status, g.Finished(), tt.expected)
		}
	}
}

// TestGuessesRemaining tests the remaining-guess arithmetic.
func TestGuessesRemaining(t *testing.T) {
	g := Game{}
	if got := g.GuessesRemaining(); got != MaxGuesses {
		t.Errorf("GuessesRemaining() on fresh game = %d, want %d", got, MaxGuesses)
	}

	g.Guesses = []string{"crane", "slate"}
	if got := g.GuessesRemaining(); got != MaxGuesses-2 {
		t.Errorf("GuessesRemaining() after 2 guesses = %d, want %d", got, MaxGuesses-2)
	}

	g.Guesses = []string{"a", "b", "c", "d", "e", "f"}
	if got := g.GuessesRemaining(); got != 0 {
		t.Errorf("GuessesRemaining() after %d guesses = %d, want 0", MaxGuesses, got)
	}
}
