package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:          uuid.New(),
		DisplayName: b.displayName,
		CreatedAt:   time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// MatchBuilder creates test matches with a builder pattern
type MatchBuilder struct {
	status  domain.MatchStatus
	seated  []*domain.User
	turn    int
	started bool
}

// NewMatchBuilder creates a new MatchBuilder in waiting state
func NewMatchBuilder() *MatchBuilder {
	return &MatchBuilder{status: domain.MatchStatusWaiting}
}

// WithPlayers seats the given users in order; two players moves the match to
// in_progress with a start timestamp.
func (b *MatchBuilder) WithPlayers(users ...*domain.User) *MatchBuilder {
	b.seated = users
	if len(users) == 2 {
		b.status = domain.MatchStatusInProgress
		b.started = true
	}
	return b
}

// WithTurn sets the turn counter directly
func (b *MatchBuilder) WithTurn(turn int) *MatchBuilder {
	b.turn = turn
	return b
}

// Build creates the match and its seats in the database
func (b *MatchBuilder) Build(t *testing.T, db *gorm.DB) *domain.Match {
	t.Helper()

	match := &domain.Match{
		ID:          uuid.New(),
		Status:      b.status,
		TurnCounter: b.turn,
		CreatedAt:   time.Now(),
	}
	if b.started {
		now := time.Now()
		match.StartedAt = &now
	}

	if err := db.Create(match).Error; err != nil {
		t.Fatalf("failed to create match: %v", err)
	}

	for order, user := range b.seated {
		seat := &domain.Seat{
			ID:          uuid.New(),
			MatchID:     match.ID,
			UserID:      user.ID,
			PlayerOrder: order,
		}
		if err := db.Create(seat).Error; err != nil {
			t.Fatalf("failed to create seat: %v", err)
		}
		match.Seats = append(match.Seats, *seat)
	}

	return match
}
