package service_test

import (
	"context"
	"testing"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/ani/grid-game-engine/internal/repository/postgres"
	"github.com/ani/grid-game-engine/internal/service"
	"github.com/ani/grid-game-engine/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// winInFive has seat 0 win with three marks in the top row.
var winInFive = [][3]int{
	{0, 0, 0}, {1, 1, 0}, {0, 0, 1}, {1, 1, 1}, {0, 0, 2},
}

// winInSeven has seat 0 win with four marks, completing the left column.
var winInSeven = [][3]int{
	{0, 0, 0}, {1, 1, 1}, {0, 0, 1}, {1, 0, 2}, {0, 2, 0}, {1, 2, 2}, {0, 1, 0},
}

// drawInNine fills the board with no line for either seat.
var drawInNine = [][3]int{
	{0, 0, 0}, {1, 0, 1}, {0, 0, 2}, {1, 1, 1}, {0, 1, 0}, {1, 1, 2}, {0, 2, 1}, {1, 2, 0}, {0, 2, 2},
}

// runMatch creates and plays out a scripted match between two users. Each
// script entry is {seat, row, col}.
func runMatch(t *testing.T, services *service.Services, seat0, seat1 *domain.User, script [][3]int) {
	t.Helper()
	ctx := context.Background()

	match, err := services.Match.CreateMatch(ctx, seat0.ID)
	require.NoError(t, err)
	_, err = services.Match.JoinMatch(ctx, match.ID, seat1.ID)
	require.NoError(t, err)

	users := [2]*domain.User{seat0, seat1}
	for _, step := range script {
		_, err := services.Match.SubmitMove(ctx, match.ID, users[step[0]].ID, step[1], step[2])
		require.NoError(t, err)
	}
}

func TestStatsService_GetUserStats(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos)
	ctx := context.Background()

	alice := testutil.NewUserBuilder().WithDisplayName("alice").Build(t, testDB.DB)
	bob := testutil.NewUserBuilder().WithDisplayName("bob").Build(t, testDB.DB)
	carol := testutil.NewUserBuilder().WithDisplayName("carol").Build(t, testDB.DB)

	// alice beats bob in 5 moves (3 of them alice's), draws with carol,
	// loses to carol.
	runMatch(t, services, alice, bob, winInFive)
	runMatch(t, services, alice, carol, drawInNine)
	runMatch(t, services, carol, alice, winInFive)

	t.Run("mixed record", func(t *testing.T) {
		stats, err := services.Stats.GetUserStats(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Games)
		assert.Equal(t, 1, stats.Wins)
		assert.Equal(t, 1, stats.Draws)
		assert.Equal(t, 1, stats.Losses)
		assert.InDelta(t, 1.0/3.0, stats.WinRatio, 1e-9)
		require.NotNil(t, stats.Efficiency)
		assert.InDelta(t, 3.0, *stats.Efficiency, 1e-9)
	})

	t.Run("no wins means no efficiency", func(t *testing.T) {
		stats, err := services.Stats.GetUserStats(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Games)
		assert.Equal(t, 0, stats.Wins)
		assert.Equal(t, 1, stats.Losses)
		assert.Zero(t, stats.WinRatio)
		assert.Nil(t, stats.Efficiency)
	})

	t.Run("no games guards the ratio", func(t *testing.T) {
		idle := testutil.NewUserBuilder().WithDisplayName("idle").Build(t, testDB.DB)
		stats, err := services.Stats.GetUserStats(ctx, idle.ID)
		require.NoError(t, err)
		assert.Zero(t, stats.Games)
		assert.Zero(t, stats.WinRatio)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := services.Stats.GetUserStats(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestStatsService_GetLeaderboard(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos)
	ctx := context.Background()

	alice := testutil.NewUserBuilder().WithDisplayName("alice").Build(t, testDB.DB)
	bob := testutil.NewUserBuilder().WithDisplayName("bob").Build(t, testDB.DB)
	carol := testutil.NewUserBuilder().WithDisplayName("carol").Build(t, testDB.DB)
	dave := testutil.NewUserBuilder().WithDisplayName("dave").Build(t, testDB.DB)

	// alice: two quick wins (3 moves each). carol: one slow win (4 moves).
	// bob and dave never win.
	runMatch(t, services, alice, bob, winInFive)
	runMatch(t, services, alice, dave, winInFive)
	runMatch(t, services, carol, dave, winInSeven)

	t.Run("wins metric", func(t *testing.T) {
		entries, err := services.Stats.GetLeaderboard(ctx, service.MetricWins)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, alice.ID, entries[0].UserID)
		assert.Equal(t, 2, entries[0].Wins)
		assert.Equal(t, carol.ID, entries[1].UserID)
		assert.Equal(t, 1, entries[1].Wins)
		// Third place is a zero-win player; ties break by user id.
		assert.Equal(t, 0, entries[2].Wins)
	})

	t.Run("efficiency metric ranks fewer moves first", func(t *testing.T) {
		entries, err := services.Stats.GetLeaderboard(ctx, service.MetricEfficiency)
		require.NoError(t, err)
		require.Len(t, entries, 2, "users without wins are excluded")

		assert.Equal(t, alice.ID, entries[0].UserID)
		assert.InDelta(t, 3.0, entries[0].Value, 1e-9)
		assert.Equal(t, carol.ID, entries[1].UserID)
		assert.InDelta(t, 4.0, entries[1].Value, 1e-9)
	})

	t.Run("unsupported metric sentinel", func(t *testing.T) {
		_, err := services.Stats.GetLeaderboard(ctx, "streak")
		assert.ErrorIs(t, err, domain.ErrUnsupportedMetric)
	})
}
