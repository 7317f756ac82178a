package domain

import "errors"

// Closed error taxonomy. Conflict and CellOccupied are retryable: the caller
// is expected to re-fetch the match view and resubmit. Everything else is
// terminal for the request.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMatchNotFound = errors.New("match not found")

	ErrInvalidState  = errors.New("match is not in a valid state for this action")
	ErrMatchFull     = errors.New("match already has two seats")
	ErrAlreadySeated = errors.New("user already holds a seat in this match")
	ErrForbidden     = errors.New("user may not move on this turn")

	ErrConflict     = errors.New("turn already claimed by a concurrent move")
	ErrCellOccupied = errors.New("cell already occupied")

	ErrOutOfRange = errors.New("row and col must be between 0 and 2")

	// Not a failure: an unknown leaderboard metric yields this sentinel and
	// the transport renders it as a normal response.
	ErrUnsupportedMetric = errors.New("unsupported metric")
)
