// Package game holds the pure board logic: reconstructing a grid from the
// move log and deciding win or draw. Nothing here touches storage, so every
// function is safe to call concurrently on the same input.
package game

import (
	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/google/uuid"
)

// Board is a 3x3 grid of cell owners. A nil cell is empty.
type Board [3][3]*uuid.UUID

// victoryLines are the 8 winning triples, checked in this fixed order:
// rows, columns, then diagonals.
var victoryLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Reconstruct replays the ordered move log into a board. O(n), n <= 9.
func Reconstruct(moves []*domain.Move) Board {
	var board Board
	for _, move := range moves {
		userID := move.UserID
		board[move.Row][move.Col] = &userID
	}
	return board
}

// Winner returns the owner of the first completed line, or nil when no line
// is complete. A valid board can hold at most one completed line, since the
// match halts the instant a line completes.
func (b Board) Winner() *uuid.UUID {
	for _, line := range victoryLines {
		first := b[line[0][0]][line[0][1]]
		if first == nil {
			continue
		}
		second := b[line[1][0]][line[1][1]]
		third := b[line[2][0]][line[2][1]]
		if second != nil && third != nil && *second == *first && *third == *first {
			return first
		}
	}
	return nil
}

// Cells returns the board as nested slices for JSON views.
func (b Board) Cells() [][]*uuid.UUID {
	cells := make([][]*uuid.UUID, 3)
	for row := 0; row < 3; row++ {
		cells[row] = make([]*uuid.UUID, 3)
		for col := 0; col < 3; col++ {
			cells[row][col] = b[row][col]
		}
	}
	return cells
}
