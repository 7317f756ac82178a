package service

import (
	"bytes"
	"context"
	"sort"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/ani/grid-game-engine/internal/repository"
	"github.com/google/uuid"
)

const (
	MetricWins       = "wins"
	MetricEfficiency = "efficiency"

	leaderboardSize = 3
)

type UserStats struct {
	UserID     uuid.UUID `json:"userId"`
	Games      int       `json:"games"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	Draws      int       `json:"draws"`
	WinRatio   float64   `json:"winRatio"`
	Efficiency *float64  `json:"efficiency"`
}

type LeaderboardEntry struct {
	UserID uuid.UUID `json:"userId"`
	Value  float64   `json:"value"`
	Wins   int       `json:"wins"`
	Games  int       `json:"games"`
}

// StatsService derives per-user metrics and leaderboards from committed
// history only. It never writes, so it runs independently of the move path.
type StatsService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
}

func NewStatsService(statsRepo repository.StatsRepository, userRepo repository.UserRepository) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
	}
}

// GetUserStats computes the aggregate record of a single user. Efficiency is
// the mean number of moves the user made in matches they won; absent when the
// user has no wins.
func (s *StatsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, userErr(err)
	}

	games, err := s.statsRepo.SeatCountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	wins, err := s.statsRepo.WinCountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	draws, err := s.statsRepo.DrawCountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	moveCounts, err := s.statsRepo.WinnerMoveCountsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		UserID:     userID,
		Games:      games,
		Wins:       wins,
		Draws:      draws,
		Losses:     games - wins - draws,
		Efficiency: meanMoves(moveCounts),
	}
	if games > 0 {
		stats.WinRatio = float64(wins) / float64(games)
	}
	return stats, nil
}

// GetLeaderboard returns the top 3 users for a metric.
//
// "wins" orders by win count descending, user id ascending on ties.
// "efficiency" orders by mean winning-move count ascending (fewer moves to
// win ranks better), then wins descending, then user id ascending; users
// without a win are excluded. Any other metric yields ErrUnsupportedMetric.
func (s *StatsService) GetLeaderboard(ctx context.Context, metric string) ([]LeaderboardEntry, error) {
	if metric != MetricWins && metric != MetricEfficiency {
		return nil, domain.ErrUnsupportedMetric
	}

	seatCounts, err := s.statsRepo.SeatCounts(ctx)
	if err != nil {
		return nil, err
	}
	winCounts, err := s.statsRepo.WinCounts(ctx)
	if err != nil {
		return nil, err
	}
	moveCounts, err := s.statsRepo.WinnerMoveCounts(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(seatCounts))
	for userID := range allUsers(seatCounts, winCounts) {
		entry := LeaderboardEntry{
			UserID: userID,
			Wins:   winCounts[userID],
			Games:  seatCounts[userID],
		}
		switch metric {
		case MetricWins:
			entry.Value = float64(entry.Wins)
		case MetricEfficiency:
			eff := meanMoves(moveCounts[userID])
			if eff == nil {
				continue
			}
			entry.Value = *eff
		}
		entries = append(entries, entry)
	}

	switch metric {
	case MetricWins:
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Value != entries[j].Value {
				return entries[i].Value > entries[j].Value
			}
			return userIDLess(entries[i].UserID, entries[j].UserID)
		})
	case MetricEfficiency:
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Value != entries[j].Value {
				return entries[i].Value < entries[j].Value
			}
			if entries[i].Wins != entries[j].Wins {
				return entries[i].Wins > entries[j].Wins
			}
			return userIDLess(entries[i].UserID, entries[j].UserID)
		})
	}

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries, nil
}

func meanMoves(counts []int) *float64 {
	if len(counts) == 0 {
		return nil
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	mean := float64(total) / float64(len(counts))
	return &mean
}

func allUsers(maps ...map[uuid.UUID]int) map[uuid.UUID]struct{} {
	users := make(map[uuid.UUID]struct{})
	for _, m := range maps {
		for id := range m {
			users[id] = struct{}{}
		}
	}
	return users
}

func userIDLess(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
