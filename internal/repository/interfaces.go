package repository

import (
	"context"
	"time"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// MatchRepository is the storage contract of the match aggregate. ClaimTurn
// and ReleaseTurn are the single atomic compare-and-write primitive the turn
// protocol is built on: each is one conditional UPDATE whose boolean result
// reports whether exactly one row was affected.
type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)

	// Start moves a waiting match to in_progress. Finish records the terminal
	// transition. Both touch only their own columns so they can never clobber
	// a turn counter advanced by a concurrent claim.
	Start(ctx context.Context, matchID uuid.UUID, startedAt time.Time) error
	Finish(ctx context.Context, matchID uuid.UUID, winnerID *uuid.UUID, completedAt time.Time) error

	// ClaimTurn advances turn_counter from expectedTurn to expectedTurn+1
	// iff it still equals expectedTurn and the match is in progress. Returns
	// false when another request won the slot or the match already reached a
	// terminal state.
	ClaimTurn(ctx context.Context, matchID uuid.UUID, expectedTurn int) (bool, error)

	// ReleaseTurn reverts turn_counter from expectedTurn+1 back to
	// expectedTurn, conditioned on it still being expectedTurn+1, so a
	// slot freed by compensation cannot clobber a later claim.
	ReleaseTurn(ctx context.Context, matchID uuid.UUID, expectedTurn int) (bool, error)
}

type SeatRepository interface {
	Create(ctx context.Context, seat *domain.Seat) error
	GetByMatchID(ctx context.Context, matchID uuid.UUID) ([]*domain.Seat, error)
}

type MoveRepository interface {
	Create(ctx context.Context, move *domain.Move) error
	// GetByMatchID returns the full move log ordered by move index.
	GetByMatchID(ctx context.Context, matchID uuid.UUID) ([]*domain.Move, error)
	CellTaken(ctx context.Context, matchID uuid.UUID, row, col int) (bool, error)
}

// StatsRepository exposes the read-only aggregates the stats and leaderboard
// views are derived from. All of them are computed over committed history.
type StatsRepository interface {
	// SeatCounts returns games played per user.
	SeatCounts(ctx context.Context) (map[uuid.UUID]int, error)
	SeatCountForUser(ctx context.Context, userID uuid.UUID) (int, error)

	// WinCounts returns finished-match win totals per user.
	WinCounts(ctx context.Context) (map[uuid.UUID]int, error)
	WinCountForUser(ctx context.Context, userID uuid.UUID) (int, error)

	// DrawCountForUser counts finished matches with no winner in which the
	// user held a seat.
	DrawCountForUser(ctx context.Context, userID uuid.UUID) (int, error)

	// WinnerMoveCounts returns, per user, the number of moves that user made
	// in each match they won.
	WinnerMoveCounts(ctx context.Context) (map[uuid.UUID][]int, error)
	WinnerMoveCountsForUser(ctx context.Context, userID uuid.UUID) ([]int, error)
}

// TransactionManager runs a function against a repository set bound to a
// single database transaction. A returned error rolls every write in the
// function back.
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

type Repositories struct {
	User  UserRepository
	Match MatchRepository
	Seat  SeatRepository
	Move  MoveRepository
	Stats StatsRepository
	Tx    TransactionManager
}
