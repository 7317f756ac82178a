package postgres

import (
	"context"

	"github.com/ani/grid-game-engine/internal/repository"
	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *txManager {
	return &txManager{db: db}
}

// InTransaction hands fn a repository set bound to one transaction, so a
// multi-write operation commits or rolls back as a unit.
func (m *txManager) InTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
