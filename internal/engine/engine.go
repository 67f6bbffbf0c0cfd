package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/dropfour/internal/config"
	"github.com/lk16/dropfour/internal/connectn"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/repository"
	"github.com/lk16/dropfour/internal/search"
	"github.com/lk16/dropfour/internal/services"
)

// ErrGameFinished is returned when a move is requested for a finished game.
var ErrGameFinished = errors.New("game is finished")

// NewAgent creates a search agent with the given settings.
func NewAgent(cfg config.AgentConfig) *search.Agent {
	return search.NewAgent(search.Config{
		MaxDepth:  cfg.MaxDepth,
		Threshold: cfg.Threshold,
	})
}

// Engine plays and analyzes games on top of the repositories.
type Engine struct {
	services *services.Services
	agentCfg config.AgentConfig
}

// New creates a new Engine.
func New(services *services.Services, agentCfg config.AgentConfig) *Engine {
	return &Engine{
		services: services,
		agentCfg: agentCfg,
	}
}

// NewFromCtx creates an Engine from the services and config stored in a fiber context.
func NewFromCtx(c *fiber.Ctx) *Engine {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck

	return New(services, cfg.Agent)
}

// DefaultBudget is used when a request does not specify a budget.
func (e *Engine) DefaultBudget() time.Duration {
	return e.agentCfg.Budget
}

// Analyze searches board for at most budget. Proven outcomes are served from the cache,
// otherwise the deeper of the cached and the fresh analysis is returned.
func (e *Engine) Analyze(ctx context.Context, board *connectn.Board, budget time.Duration) (models.Analysis, error) {
	if board.IsTerminal() {
		return models.Analysis{Position: board.String(), Column: -1}, nil
	}

	repo := repository.NewAnalysisRepositoryFromServices(e.services)

	cached, found, err := repo.Lookup(ctx, board.String())
	if err != nil {
		return models.Analysis{}, fmt.Errorf("error looking up analysis: %w", err)
	}

	if found && cached.Forced != "" {
		cached.Cached = true
		return cached, nil
	}

	outcome := NewAgent(e.agentCfg).Analyze(board, search.Budget(budget))
	analysis := models.NewAnalysis(board, outcome)

	if found && cached.Depth > analysis.Depth {
		cached.Cached = true
		return cached, nil
	}

	if err = repo.Store(ctx, analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("error storing analysis: %w", err)
	}

	return analysis, nil
}

// CreateGame creates and stores a new game.
func (e *Engine) CreateGame(ctx context.Context, size models.BoardSize) (models.Game, *connectn.Board, error) {
	game, err := models.NewGame(size.Width, size.Height, size.WinLength)
	if err != nil {
		return models.Game{}, nil, err
	}

	repo := repository.NewGameRepositoryFromServices(e.services)
	if err = repo.CreateGame(ctx, game); err != nil {
		return models.Game{}, nil, err
	}

	board, err := game.Board()
	if err != nil {
		return models.Game{}, nil, err
	}

	return game, board, nil
}

// GetGame loads a game and replays its board.
func (e *Engine) GetGame(ctx context.Context, id uuid.UUID) (models.Game, *connectn.Board, error) {
	repo := repository.NewGameRepositoryFromServices(e.services)

	game, err := repo.GetGame(ctx, id)
	if err != nil {
		return models.Game{}, nil, err
	}

	board, err := game.Board()
	if err != nil {
		return models.Game{}, nil, err
	}

	return game, board, nil
}

// PlayMove plays column in the game with the given ID.
func (e *Engine) PlayMove(ctx context.Context, id uuid.UUID, column int) (models.Game, *connectn.Board, error) {
	game, board, err := e.GetGame(ctx, id)
	if err != nil {
		return models.Game{}, nil, err
	}

	if board.IsTerminal() {
		return models.Game{}, nil, ErrGameFinished
	}

	return e.play(ctx, game, column)
}

// AgentMove lets the agent search for at most budget and play its move.
func (e *Engine) AgentMove(
	ctx context.Context,
	id uuid.UUID,
	budget time.Duration,
) (models.Game, *connectn.Board, models.Analysis, error) {
	game, board, err := e.GetGame(ctx, id)
	if err != nil {
		return models.Game{}, nil, models.Analysis{}, err
	}

	if board.IsTerminal() {
		return models.Game{}, nil, models.Analysis{}, ErrGameFinished
	}

	analysis, err := e.Analyze(ctx, board, budget)
	if err != nil {
		return models.Game{}, nil, models.Analysis{}, err
	}

	game, board, err = e.play(ctx, game, analysis.Column)
	if err != nil {
		return models.Game{}, nil, models.Analysis{}, err
	}

	return game, board, analysis, nil
}

func (e *Engine) play(ctx context.Context, game models.Game, column int) (models.Game, *connectn.Board, error) {
	previousMoves := len(game.Moves)

	board, err := game.Play(column)
	if err != nil {
		return models.Game{}, nil, err
	}

	repo := repository.NewGameRepositoryFromServices(e.services)
	if err = repo.UpdateGame(ctx, game, previousMoves); err != nil {
		return models.Game{}, nil, err
	}

	return game, board, nil
}
