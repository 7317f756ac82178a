package postgres

import (
	"context"
	"time"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).
		Preload("Seats").
		First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) Start(ctx context.Context, matchID uuid.UUID, startedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("id = ?", matchID).
		Updates(map[string]interface{}{
			"status":     domain.MatchStatusInProgress,
			"started_at": startedAt,
		}).Error
}

func (r *matchRepository) Finish(ctx context.Context, matchID uuid.UUID, winnerID *uuid.UUID, completedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("id = ?", matchID).
		Updates(map[string]interface{}{
			"status":       domain.MatchStatusFinished,
			"winner_id":    winnerID,
			"completed_at": completedAt,
		}).Error
}

// ClaimTurn is the optimistic-concurrency claim: one conditional UPDATE, no
// explicit lock. Exactly one concurrent caller sees RowsAffected == 1. The
// status predicate makes a claim against a finished match lose outright, even
// when the caller's view of the match is stale.
func (r *matchRepository) ClaimTurn(ctx context.Context, matchID uuid.UUID, expectedTurn int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("id = ? AND turn_counter = ? AND status = ?", matchID, expectedTurn, domain.MatchStatusInProgress).
		Update("turn_counter", expectedTurn+1)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ReleaseTurn undoes a claim during compensation. The guard on
// expectedTurn+1 means a revert can never fire once the slot has been
// legitimately re-claimed and advanced.
func (r *matchRepository) ReleaseTurn(ctx context.Context, matchID uuid.UUID, expectedTurn int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("id = ? AND turn_counter = ?", matchID, expectedTurn+1).
		Update("turn_counter", expectedTurn)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
