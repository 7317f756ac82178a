package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/ani/grid-game-engine/internal/repository/postgres"
	"github.com/ani/grid-game-engine/internal/service"
	"github.com/ani/grid-game-engine/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnArbitrator_Claim(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	arbiter := service.NewTurnArbitrator(repos.Match, repos.Move)
	ctx := context.Background()

	playerA := testutil.NewUserBuilder().Build(t, testDB.DB)
	playerB := testutil.NewUserBuilder().Build(t, testDB.DB)
	match := testutil.NewMatchBuilder().WithPlayers(playerA, playerB).Build(t, testDB.DB)

	t.Run("claim advances the counter", func(t *testing.T) {
		err := arbiter.Claim(ctx, match.ID, 0, 0, 0)
		require.NoError(t, err)

		stored, err := repos.Match.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.TurnCounter)
	})

	t.Run("stale claim loses", func(t *testing.T) {
		err := arbiter.Claim(ctx, match.ID, 0, 1, 1)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("occupied cell triggers compensation", func(t *testing.T) {
		// Record a move in the claimed slot so cell (2,2) is taken.
		require.NoError(t, repos.Move.Create(ctx, &domain.Move{
			ID:        uuid.New(),
			MatchID:   match.ID,
			UserID:    playerA.ID,
			Row:       2,
			Col:       2,
			MoveIndex: 0,
			PlayedAt:  time.Now(),
		}))

		err := arbiter.Claim(ctx, match.ID, 1, 2, 2)
		assert.ErrorIs(t, err, domain.ErrCellOccupied)

		// The slot is restored and claimable by the next attempt.
		stored, err := repos.Match.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.TurnCounter)

		err = arbiter.Claim(ctx, match.ID, 1, 2, 1)
		require.NoError(t, err)
	})
}

func TestTurnArbitrator_FinishedMatch(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	arbiter := service.NewTurnArbitrator(repos.Match, repos.Move)
	ctx := context.Background()

	playerA := testutil.NewUserBuilder().Build(t, testDB.DB)
	playerB := testutil.NewUserBuilder().Build(t, testDB.DB)
	match := testutil.NewMatchBuilder().WithPlayers(playerA, playerB).WithTurn(5).Build(t, testDB.DB)

	require.NoError(t, repos.Match.Finish(ctx, match.ID, &playerA.ID, time.Now()))

	// A claim built from a view read before the finish committed must lose,
	// so no move can ever land behind the winning one.
	err := arbiter.Claim(ctx, match.ID, 5, 2, 2)
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err := repos.Match.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.TurnCounter)
}
