package service

import (
	"context"
	"math"

	"monad-wordle/internal/model"
	"monad-wordle/internal/repository"
)

// LeaderboardService derives a ranked top-N view from player stats.
type LeaderboardService struct {
	users        *repository.UserRepository
	defaultLimit int
	maxLimit     int
}

// NewLeaderboardService creates a new LeaderboardService instance.
func NewLeaderboardService(users *repository.UserRepository, defaultLimit, maxLimit int) *LeaderboardService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &LeaderboardService{
		users:        users,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// TopN returns the highest-ranked players: games won descending with
// max streak as the tie-break. n <= 0 falls back to the default limit.
// An empty player table yields an empty slice, not an error.
func (s *LeaderboardService) TopN(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	if n <= 0 {
		n = s.defaultLimit
	}
	if n > s.maxLimit {
		n = s.maxLimit
	}

	users, err := s.users.ListTop(ctx, n)
	if err != nil {
		return nil, err
	}

	return BuildEntries(users), nil
}

// BuildEntries maps already-sorted users onto leaderboard rows: dense
// 1-based ranks by position (ties do not share a rank) and a win rate
// rounded to a whole percentage, 0 for players with no games.
func BuildEntries(users []*model.User) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, model.LeaderboardEntry{
			Rank:          i + 1,
			Address:       u.Address,
			GamesPlayed:   u.GamesPlayed,
			GamesWon:      u.GamesWon,
			WinRate:       winRate(u.GamesWon, u.GamesPlayed),
			CurrentStreak: u.CurrentStreak,
			MaxStreak:     u.MaxStreak,
		})
	}
	return entries
}

// winRate is round(100 * won / played), 0 when no games were played.
func winRate(won, played int) int {
	if played == 0 {
		return 0
	}
	return int(math.Round(100 * float64(won) / float64(played)))
}
