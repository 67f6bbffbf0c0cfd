package repository //nolint:testpackage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/services"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_Memory(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepositoryFromServices(services.NewMemoryServices())

	game, err := models.NewGame(4, 4, 3)
	require.NoError(t, err)
	require.NoError(t, repo.CreateGame(ctx, game))

	_, err = repo.GetGame(ctx, uuid.New())
	require.ErrorIs(t, err, ErrGameNotFound)

	for _, column := range []int{0, 1, 0, 1, 0} {
		_, err = game.Play(column)
		require.NoError(t, err)
	}
	require.NoError(t, repo.UpdateGame(ctx, game, 0))

	found, err := repo.GetGame(ctx, game.ID)
	require.NoError(t, err)
	require.Equal(t, models.Moves{0, 1, 0, 1, 0}, found.Moves)
	require.Equal(t, "player_one_wins", found.Result)

	stats, err := repo.GetResultStats(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.ResultStats{{Result: "player_one_wins", Count: 1}}, stats)
}

func TestGameRepository_UpdateUnknown(t *testing.T) {
	repo := NewGameRepositoryFromServices(services.NewMemoryServices())

	game, err := models.NewGame(7, 6, 4)
	require.NoError(t, err)
	require.ErrorIs(t, repo.UpdateGame(context.Background(), game, 0), ErrGameNotFound)
}

func TestGameRepository_ConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepositoryFromServices(services.NewMemoryServices())

	game, err := models.NewGame(4, 4, 3)
	require.NoError(t, err)
	for _, column := range []int{0, 1, 0, 1} {
		_, err = game.Play(column)
		require.NoError(t, err)
	}
	require.NoError(t, repo.CreateGame(ctx, game))

	// Two requests read the same game and both play a winning move.
	first, err := repo.GetGame(ctx, game.ID)
	require.NoError(t, err)
	second, err := repo.GetGame(ctx, game.ID)
	require.NoError(t, err)

	_, err = first.Play(0)
	require.NoError(t, err)
	_, err = second.Play(0)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateGame(ctx, first, 4))
	require.ErrorIs(t, repo.UpdateGame(ctx, second, 4), ErrGameConflict)

	found, err := repo.GetGame(ctx, game.ID)
	require.NoError(t, err)
	require.Equal(t, models.Moves{0, 1, 0, 1, 0}, found.Moves)

	stats, err := repo.GetResultStats(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.ResultStats{{Result: "player_one_wins", Count: 1}}, stats)
}

func TestAnalysisRepository_Memory(t *testing.T) {
	ctx := context.Background()
	repo := NewAnalysisRepositoryFromServices(services.NewMemoryServices())

	_, ok, err := repo.Lookup(ctx, "7x6n4:x")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Store(ctx, models.Analysis{Position: "7x6n4:x", Column: 3, Depth: 5}))
	require.NoError(t, repo.Store(ctx, models.Analysis{Position: "7x6n4:x", Column: 2, Depth: 4}))

	analysis, ok, err := repo.Lookup(ctx, "7x6n4:x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, analysis.Column)
	require.Equal(t, 5, analysis.Depth)
}

func TestAnalysisRepository_StoreAll(t *testing.T) {
	ctx := context.Background()
	services := services.NewMemoryServices()
	repo := NewAnalysisRepositoryFromServices(services)

	require.NoError(t, repo.StoreAll(ctx, []models.Analysis{
		{Position: "7x6n4:x", Column: 3, Depth: 2},
		{Position: "7x6n4:x", Column: 4, Depth: 6},
		{Position: "7x6n4:xo", Column: 1, Depth: 3},
		{Position: "7x6n4:full", Column: -1},
	}))

	require.Equal(t, 2, services.Analyses.Len())

	analysis, ok, err := repo.Lookup(ctx, "7x6n4:x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, analysis.Column)
	require.Equal(t, 6, analysis.Depth)
}
