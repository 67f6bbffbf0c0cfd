package selfplay

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/dropfour/internal/connectn"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/search"
)

// Config configures a self-play run.
type Config struct {
	Games     int
	Width     int
	Height    int
	WinLength int

	// Budget is the thinking time per move.
	Budget    time.Duration
	Threshold time.Duration
	MaxDepth  int

	// Seed makes the move ordering of both agents reproducible.
	Seed int64
}

// GameRecord is a finished self-play game.
type GameRecord struct {
	ID     uuid.UUID
	Moves  []int
	Result connectn.Result
	Rows   []Row

	// Analyses holds the search result of every position the agents saw.
	Analyses []models.Analysis
}

// Runner plays games between two agents that differ only in their random source.
type Runner struct {
	cfg    Config
	agents [2]*search.Agent
}

// NewRunner validates cfg and creates the agents.
func NewRunner(cfg Config) (*Runner, error) {
	if _, err := connectn.NewBoard(cfg.Width, cfg.Height, cfg.WinLength); err != nil {
		return nil, err
	}

	if cfg.Games < 0 {
		return nil, fmt.Errorf("invalid number of games: %d", cfg.Games)
	}

	runner := &Runner{cfg: cfg}
	for i := range runner.agents {
		runner.agents[i] = search.NewAgent(search.Config{
			MaxDepth:  cfg.MaxDepth,
			Threshold: cfg.Threshold,
			Rand:      rand.New(rand.NewSource(cfg.Seed + int64(i))), //nolint:gosec
		})
	}

	return runner, nil
}

// Run plays all games, stopping early when ctx is cancelled between games.
func (r *Runner) Run(ctx context.Context) ([]GameRecord, error) {
	records := make([]GameRecord, 0, r.cfg.Games)

	for i := 0; i < r.cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			return records, fmt.Errorf("self-play interrupted after %d games: %w", i, err)
		}

		record, err := r.PlayGame()
		if err != nil {
			return records, err
		}

		slog.Info("game finished", "game", i+1, "of", r.cfg.Games, "result", record.Result, "moves", len(record.Moves))
		records = append(records, record)
	}

	return records, nil
}

// PlayGame plays a single game. The first agent plays PlayerOne.
func (r *Runner) PlayGame() (GameRecord, error) {
	game, err := connectn.NewGame(r.cfg.Width, r.cfg.Height, r.cfg.WinLength)
	if err != nil {
		return GameRecord{}, err
	}

	record := GameRecord{ID: uuid.New()}

	for ply := 0; ; ply++ {
		board := game.Board()
		if board.IsTerminal() {
			break
		}

		agent := r.agents[ply%2]
		outcome := agent.Analyze(board, search.Budget(r.cfg.Budget))

		if err = game.PushMove(outcome.Column); err != nil {
			return GameRecord{}, fmt.Errorf("agent played an illegal move at ply %d: %w", ply, err)
		}

		record.Rows = append(record.Rows, newRow(record.ID, ply, board, outcome))
		record.Analyses = append(record.Analyses, models.NewAnalysis(board, outcome))
	}

	record.Moves = game.Moves()
	record.Result = game.Board().Result()

	for i := range record.Rows {
		record.Rows[i].Result = record.Result.String()
	}

	return record, nil
}

// Analyses flattens the analyses of all records.
func Analyses(records []GameRecord) []models.Analysis {
	analyses := make([]models.Analysis, 0)
	for _, record := range records {
		analyses = append(analyses, record.Analyses...)
	}
	return analyses
}
