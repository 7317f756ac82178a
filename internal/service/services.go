package service

import (
	"github.com/ani/grid-game-engine/internal/repository"
)

type Services struct {
	User  *UserService
	Match *MatchService
	Stats *StatsService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		User:  NewUserService(repos.User),
		Match: NewMatchService(repos),
		Stats: NewStatsService(repos.Stats, repos.User),
	}
}
