package service

import (
	"context"
	"errors"
	"time"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/ani/grid-game-engine/internal/game"
	"github.com/ani/grid-game-engine/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchView is the caller-facing projection of a match: entity fields plus
// the board reconstructed from the move log.
type MatchView struct {
	ID           uuid.UUID          `json:"id"`
	Status       domain.MatchStatus `json:"status"`
	Board        [][]*uuid.UUID     `json:"board"`
	NextPlayerID *uuid.UUID         `json:"nextPlayerId"`
	Players      []uuid.UUID        `json:"players"`
	WinnerID     *uuid.UUID         `json:"winnerId"`
}

// MatchService is the lifecycle controller: it owns the create/join/move
// state machine and composes the arbitrator with board reconstruction and
// win detection. Every mutating operation runs inside one database
// transaction, so a move's claim, log append, and terminal transition commit
// or roll back as a unit; the conditional claim UPDATE remains the
// serialization point between concurrent movers. All shared state lives in
// storage; the service itself is stateless and safe for request-parallel use.
type MatchService struct {
	repos *repository.Repositories
}

func NewMatchService(repos *repository.Repositories) *MatchService {
	return &MatchService{repos: repos}
}

// CreateMatch opens a new waiting match with the creator in seat 0.
func (s *MatchService) CreateMatch(ctx context.Context, creatorID uuid.UUID) (*domain.Match, error) {
	match := &domain.Match{
		ID:     uuid.New(),
		Status: domain.MatchStatusWaiting,
	}

	err := s.repos.Tx.InTransaction(ctx, func(r *repository.Repositories) error {
		if _, err := r.User.GetByID(ctx, creatorID); err != nil {
			return userErr(err)
		}
		if err := r.Match.Create(ctx, match); err != nil {
			return err
		}

		seat := &domain.Seat{
			ID:          uuid.New(),
			MatchID:     match.ID,
			UserID:      creatorID,
			PlayerOrder: 0,
		}
		if err := r.Seat.Create(ctx, seat); err != nil {
			return err
		}
		match.Seats = []domain.Seat{*seat}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// JoinMatch seats a second user and starts the match. The seat insert and the
// start transition share one transaction; when two joins race past the seat
// guards, the loser hits the (match_id, player_order) unique index and the
// duplicate is reported as ErrMatchFull.
func (s *MatchService) JoinMatch(ctx context.Context, matchID, userID uuid.UUID) (*MatchView, error) {
	err := s.repos.Tx.InTransaction(ctx, func(r *repository.Repositories) error {
		match, err := r.Match.GetByID(ctx, matchID)
		if err != nil {
			return matchErr(err)
		}
		if match.Status != domain.MatchStatusWaiting {
			return domain.ErrInvalidState
		}
		if _, err := r.User.GetByID(ctx, userID); err != nil {
			return userErr(err)
		}
		for _, seat := range match.Seats {
			if seat.UserID == userID {
				return domain.ErrAlreadySeated
			}
		}
		if len(match.Seats) >= 2 {
			return domain.ErrMatchFull
		}

		order := 0
		if match.SeatUser(0) != nil {
			order = 1
		}
		seat := &domain.Seat{
			ID:          uuid.New(),
			MatchID:     match.ID,
			UserID:      userID,
			PlayerOrder: order,
		}
		if err := r.Seat.Create(ctx, seat); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrMatchFull
			}
			return err
		}

		if len(match.Seats)+1 == 2 {
			return r.Match.Start(ctx, match.ID, time.Now().UTC())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetMatch(ctx, matchID)
}

// SubmitMove runs a full move attempt: guards, atomic claim, move record,
// board evaluation, terminal transition — all inside one transaction. The
// "not your turn" guard works off the turn counter read here; genuine races
// still lose the claim, so the guard is an optimization, not the safety
// mechanism. Until the winning move's transaction commits, its claim holds
// the match row, so a concurrent mover cannot slip a move in behind the win.
func (s *MatchService) SubmitMove(ctx context.Context, matchID, userID uuid.UUID, row, col int) (*MatchView, error) {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return nil, domain.ErrOutOfRange
	}

	err := s.repos.Tx.InTransaction(ctx, func(r *repository.Repositories) error {
		match, err := r.Match.GetByID(ctx, matchID)
		if err != nil {
			return matchErr(err)
		}
		if match.Status != domain.MatchStatusInProgress {
			return domain.ErrInvalidState
		}

		seated := false
		for _, seat := range match.Seats {
			if seat.UserID == userID {
				seated = true
				break
			}
		}
		if !seated {
			return domain.ErrForbidden
		}

		expectedTurn := match.TurnCounter
		mover := match.SeatUser(expectedTurn % 2)
		if mover == nil || *mover != userID {
			return domain.ErrForbidden
		}

		arbiter := NewTurnArbitrator(r.Match, r.Move)
		if err := arbiter.Claim(ctx, matchID, expectedTurn, row, col); err != nil {
			return err
		}

		move := &domain.Move{
			ID:        uuid.New(),
			MatchID:   matchID,
			UserID:    userID,
			Row:       row,
			Col:       col,
			MoveIndex: expectedTurn,
			PlayedAt:  time.Now().UTC(),
		}
		if err := r.Move.Create(ctx, move); err != nil {
			return err
		}

		moves, err := r.Move.GetByMatchID(ctx, matchID)
		if err != nil {
			return err
		}
		board := game.Reconstruct(moves)

		if winner := board.Winner(); winner != nil {
			return r.Match.Finish(ctx, matchID, winner, time.Now().UTC())
		}
		if expectedTurn+1 >= 9 {
			// Full board, no line: draw.
			return r.Match.Finish(ctx, matchID, nil, time.Now().UTC())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetMatch(ctx, matchID)
}

// GetMatch returns the current view of a match.
func (s *MatchService) GetMatch(ctx context.Context, matchID uuid.UUID) (*MatchView, error) {
	match, err := s.repos.Match.GetByID(ctx, matchID)
	if err != nil {
		return nil, matchErr(err)
	}
	moves, err := s.repos.Move.GetByMatchID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	board := game.Reconstruct(moves)

	return &MatchView{
		ID:           match.ID,
		Status:       match.Status,
		Board:        board.Cells(),
		NextPlayerID: match.NextPlayer(),
		Players:      match.SeatedUsers(),
		WinnerID:     match.WinnerID,
	}, nil
}

func matchErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrMatchNotFound
	}
	return err
}

func userErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
