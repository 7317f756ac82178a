package postgres

import (
	"context"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type moveRepository struct {
	db *gorm.DB
}

func NewMoveRepository(db *gorm.DB) *moveRepository {
	return &moveRepository{db: db}
}

func (r *moveRepository) Create(ctx context.Context, move *domain.Move) error {
	return r.db.WithContext(ctx).Create(move).Error
}

func (r *moveRepository) GetByMatchID(ctx context.Context, matchID uuid.UUID) ([]*domain.Move, error) {
	var moves []*domain.Move
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("move_index ASC").
		Find(&moves).Error
	if err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *moveRepository) CellTaken(ctx context.Context, matchID uuid.UUID, row, col int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Move{}).
		Where(`match_id = ? AND "row" = ? AND col = ?`, matchID, row, col).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
