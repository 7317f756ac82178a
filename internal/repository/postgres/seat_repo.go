package postgres

import (
	"context"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) *seatRepository {
	return &seatRepository{db: db}
}

func (r *seatRepository) Create(ctx context.Context, seat *domain.Seat) error {
	return r.db.WithContext(ctx).Create(seat).Error
}

func (r *seatRepository) GetByMatchID(ctx context.Context, matchID uuid.UUID) ([]*domain.Seat, error) {
	var seats []*domain.Seat
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("player_order ASC").
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}
