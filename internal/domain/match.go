package domain

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusWaiting    MatchStatus = "waiting"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusFinished   MatchStatus = "finished"
)

// Match is the aggregate root of a single game. TurnCounter is both the
// optimistic-concurrency version and the index of the next move to accept:
// it always equals the number of committed moves for the match.
type Match struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Status      MatchStatus `json:"status" gorm:"not null;default:'waiting'"`
	TurnCounter int         `json:"turnCounter" gorm:"not null;default:0"`
	WinnerID    *uuid.UUID  `json:"winnerId" gorm:"type:uuid"`
	CreatedAt   time.Time   `json:"createdAt"`
	StartedAt   *time.Time  `json:"startedAt"`
	CompletedAt *time.Time  `json:"completedAt"`

	// Relations
	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:MatchID"`
}

// Seat binds one user to one of the two fixed positions in a match.
// PlayerOrder 0 moves on even turn counters, 1 on odd.
type Seat struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MatchID     uuid.UUID `json:"matchId" gorm:"type:uuid;not null;uniqueIndex:uniq_seat_slot,priority:1;uniqueIndex:uniq_seat_user,priority:1"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:uniq_seat_user,priority:2"`
	PlayerOrder int       `json:"playerOrder" gorm:"not null;uniqueIndex:uniq_seat_slot,priority:2"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SeatUser returns the user holding the given player order, if seated.
func (m *Match) SeatUser(order int) *uuid.UUID {
	for i := range m.Seats {
		if m.Seats[i].PlayerOrder == order {
			return &m.Seats[i].UserID
		}
	}
	return nil
}

// NextPlayer returns the user whose turn is next, or nil when the match is
// not in progress.
func (m *Match) NextPlayer() *uuid.UUID {
	if m.Status != MatchStatusInProgress {
		return nil
	}
	return m.SeatUser(m.TurnCounter % 2)
}

// SeatedUsers returns seated user ids in play order.
func (m *Match) SeatedUsers() []uuid.UUID {
	users := make([]uuid.UUID, 0, 2)
	for _, order := range []int{0, 1} {
		if id := m.SeatUser(order); id != nil {
			users = append(users, *id)
		}
	}
	return users
}
