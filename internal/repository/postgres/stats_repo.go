package postgres

import (
	"context"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

type userCount struct {
	UserID uuid.UUID
	Count  int
}

func (r *statsRepository) SeatCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []userCount
	err := r.db.WithContext(ctx).
		Model(&domain.Seat{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsByUser(rows), nil
}

func (r *statsRepository) SeatCountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Seat{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}

func (r *statsRepository) WinCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []userCount
	err := r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Select("winner_id AS user_id, COUNT(*) AS count").
		Where("winner_id IS NOT NULL").
		Group("winner_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsByUser(rows), nil
}

func (r *statsRepository) WinCountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("winner_id = ?", userID).
		Count(&count).Error
	return int(count), err
}

func (r *statsRepository) DrawCountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Joins("JOIN seats ON seats.match_id = matches.id").
		Where("matches.status = ? AND matches.winner_id IS NULL AND seats.user_id = ?",
			domain.MatchStatusFinished, userID).
		Count(&count).Error
	return int(count), err
}

type matchMoveCount struct {
	UserID  uuid.UUID
	MatchID uuid.UUID
	Count   int
}

// winnerMovesQuery groups the winner's own moves per match they won.
func (r *statsRepository) winnerMovesQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.Move{}).
		Select("moves.user_id, moves.match_id, COUNT(*) AS count").
		Joins("JOIN matches ON matches.id = moves.match_id").
		Where("matches.winner_id = moves.user_id").
		Group("moves.user_id, moves.match_id")
}

func (r *statsRepository) WinnerMoveCounts(ctx context.Context) (map[uuid.UUID][]int, error) {
	var rows []matchMoveCount
	if err := r.winnerMovesQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID][]int)
	for _, row := range rows {
		counts[row.UserID] = append(counts[row.UserID], row.Count)
	}
	return counts, nil
}

func (r *statsRepository) WinnerMoveCountsForUser(ctx context.Context, userID uuid.UUID) ([]int, error) {
	var rows []matchMoveCount
	err := r.winnerMovesQuery(ctx).
		Where("moves.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make([]int, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, row.Count)
	}
	return counts, nil
}

func countsByUser(rows []userCount) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts
}
