package domain

import (
	"time"

	"github.com/google/uuid"
)

// Move is an immutable log record. MoveIndex is the turn-counter value the
// mover claimed; for a match, move indexes form the dense sequence
// 0..TurnCounter-1 and no two moves share a cell. Moves are never updated or
// deleted, so board state is always a pure projection of the log.
type Move struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MatchID   uuid.UUID `json:"matchId" gorm:"type:uuid;not null;uniqueIndex:uniq_move_cell,priority:1;uniqueIndex:uniq_move_index,priority:1"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	Row       int       `json:"row" gorm:"not null;uniqueIndex:uniq_move_cell,priority:2"`
	Col       int       `json:"col" gorm:"not null;uniqueIndex:uniq_move_cell,priority:3"`
	MoveIndex int       `json:"moveIndex" gorm:"not null;uniqueIndex:uniq_move_index,priority:2"`
	PlayedAt  time.Time `json:"playedAt"`
}
