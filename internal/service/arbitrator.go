package service

import (
	"context"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/ani/grid-game-engine/internal/repository"
	"github.com/google/uuid"
)

// TurnArbitrator serializes turn-taking with a single optimistic
// compare-and-write instead of locks. For every (match, turn) slot at most
// one Claim ever succeeds; all losers get ErrConflict and must re-fetch and
// resubmit at their own discretion.
type TurnArbitrator struct {
	matchRepo repository.MatchRepository
	moveRepo  repository.MoveRepository
}

func NewTurnArbitrator(matchRepo repository.MatchRepository, moveRepo repository.MoveRepository) *TurnArbitrator {
	return &TurnArbitrator{
		matchRepo: matchRepo,
		moveRepo:  moveRepo,
	}
}

// Claim attempts to take the turn slot expectedTurn for a move at (row, col).
//
// The occupancy check runs after the claim and before any other read: board
// state is derived independently of the counter, so the cell may have been
// filled between the caller's read and the claim. When that happens the
// counter is reverted, conditioned on it still being expectedTurn+1, and
// ErrCellOccupied is returned so the slot stays available for the correct
// player.
func (a *TurnArbitrator) Claim(ctx context.Context, matchID uuid.UUID, expectedTurn, row, col int) error {
	claimed, err := a.matchRepo.ClaimTurn(ctx, matchID, expectedTurn)
	if err != nil {
		return err
	}
	if !claimed {
		return domain.ErrConflict
	}

	taken, err := a.moveRepo.CellTaken(ctx, matchID, row, col)
	if err != nil {
		a.Release(ctx, matchID, expectedTurn)
		return err
	}
	if taken {
		if _, err := a.matchRepo.ReleaseTurn(ctx, matchID, expectedTurn); err != nil {
			return err
		}
		return domain.ErrCellOccupied
	}

	return nil
}

// Release gives a claimed slot back when the claim cannot be followed
// through. Best effort: the conditional write refuses to touch a counter
// that moved on.
func (a *TurnArbitrator) Release(ctx context.Context, matchID uuid.UUID, expectedTurn int) {
	a.matchRepo.ReleaseTurn(ctx, matchID, expectedTurn) //nolint:errcheck
}
