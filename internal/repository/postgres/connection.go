package postgres

import (
	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/ani/grid-game-engine/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Match{},
		&domain.Seat{},
		&domain.Move{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:  NewUserRepository(db),
		Match: NewMatchRepository(db),
		Seat:  NewSeatRepository(db),
		Move:  NewMoveRepository(db),
		Stats: NewStatsRepository(db),
		Tx:    NewTxManager(db),
	}
}
