package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/services"
)

const (
	gameResultsKey = "game_results"
)

var (
	// ErrGameNotFound is returned when no game with the requested ID exists.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameConflict is returned when a game changed between reading and updating it.
	ErrGameConflict = errors.New("game was updated by another request")
)

// GameRepository stores games in Postgres, or in memory when Postgres is not configured.
// Result statistics live in Redis, or in memory when Redis is not configured.
type GameRepository struct {
	services *services.Services
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(c *fiber.Ctx) *GameRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	return &GameRepository{
		services: services,
	}
}

// NewGameRepositoryFromServices creates a GameRepository outside of a request.
func NewGameRepositoryFromServices(services *services.Services) *GameRepository {
	return &GameRepository{
		services: services,
	}
}

// CreateGame stores a new game.
func (repo *GameRepository) CreateGame(ctx context.Context, game models.Game) error {
	pgConn := repo.services.Postgres

	if pgConn == nil {
		repo.services.Games.Put(game)
		return nil
	}

	query := `
		INSERT INTO games (id, width, height, win_length, moves, result, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgConn.ExecContext(ctx, query,
		game.ID,
		game.Width,
		game.Height,
		game.WinLength,
		pq.Array(game.Moves),
		game.Result,
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	return nil
}

// GetGame looks up a game by ID.
func (repo *GameRepository) GetGame(ctx context.Context, id uuid.UUID) (models.Game, error) {
	pgConn := repo.services.Postgres

	if pgConn == nil {
		game, ok := repo.services.Games.Get(id)
		if !ok {
			return models.Game{}, ErrGameNotFound
		}
		return game, nil
	}

	query := `
		SELECT id, width, height, win_length, moves, result, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	var game models.Game
	err := pgConn.GetContext(ctx, &game, query, id)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Game{}, ErrGameNotFound
	}

	if err != nil {
		return models.Game{}, fmt.Errorf("error getting game: %w", err)
	}

	return game, nil
}

// UpdateGame stores the moves and result of an existing game, provided it still has
// previousMoves moves. Otherwise ErrGameConflict is returned and nothing is written.
// When the game just finished, its result is counted in the stats.
func (repo *GameRepository) UpdateGame(ctx context.Context, game models.Game, previousMoves int) error {
	if err := repo.updateGame(ctx, game, previousMoves); err != nil {
		return err
	}

	if !game.IsFinished() {
		return nil
	}

	return repo.recordResult(ctx, game.Result)
}

func (repo *GameRepository) updateGame(ctx context.Context, game models.Game, previousMoves int) error {
	pgConn := repo.services.Postgres

	if pgConn == nil {
		found, replaced := repo.services.Games.CompareAndPut(game, previousMoves)
		if !found {
			return ErrGameNotFound
		}
		if !replaced {
			return ErrGameConflict
		}
		return nil
	}

	query := `
		UPDATE games
		SET moves = $2, result = $3, updated_at = $4
		WHERE id = $1 AND cardinality(moves) = $5
	`

	result, err := pgConn.ExecContext(ctx, query,
		game.ID,
		pq.Array(game.Moves),
		game.Result,
		game.UpdatedAt,
		previousMoves,
	)
	if err != nil {
		return fmt.Errorf("error updating game: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating game: %w", err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Nothing was updated: either the game is gone or its moves changed.
	if _, err = repo.GetGame(ctx, game.ID); err != nil {
		return err
	}

	return ErrGameConflict
}

func (repo *GameRepository) recordResult(ctx context.Context, result string) error {
	redisConn := repo.services.Redis

	if redisConn == nil {
		repo.services.Games.IncrementResult(result)
		return nil
	}

	if err := redisConn.HIncrBy(ctx, gameResultsKey, result, 1).Err(); err != nil {
		return fmt.Errorf("error updating Redis stats: %w", err)
	}

	return nil
}

// GetResultStats returns the number of finished games per result.
func (repo *GameRepository) GetResultStats(ctx context.Context) ([]models.ResultStats, error) {
	var counts map[string]int

	redisConn := repo.services.Redis

	if redisConn == nil {
		counts = repo.services.Games.Results()
	} else {
		counts = make(map[string]int)

		stats, err := redisConn.HGetAll(ctx, gameResultsKey).Result()
		if err != nil {
			return nil, fmt.Errorf("error getting game stats from Redis: %w", err)
		}

		for result, value := range stats {
			count, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("error parsing game stats value: %w", err)
			}
			counts[result] = count
		}
	}

	resultStats := make([]models.ResultStats, 0, len(counts))
	for result, count := range counts {
		resultStats = append(resultStats, models.ResultStats{Result: result, Count: count})
	}

	sort.Slice(resultStats, func(i, j int) bool {
		return resultStats[i].Result < resultStats[j].Result
	})

	return resultStats, nil
}
