package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lk16/dropfour/internal/config"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/repository"
	"github.com/lk16/dropfour/internal/selfplay"
	"github.com/lk16/dropfour/internal/services"
)

func main() {
	config.SetLogLevel()

	games := flag.Int("games", 10, "number of games to play")
	width := flag.Int("width", 7, "board width")
	height := flag.Int("height", 6, "board height")
	n := flag.Int("n", 4, "number of stones in a row needed to win")
	budget := flag.Duration("budget", 200*time.Millisecond, "thinking time per move")
	maxDepth := flag.Int("max-depth", 0, "maximum search depth, 0 means no limit")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for move ordering")
	out := flag.String("out", "data/selfplay.parquet", "output parquet file")
	redisURL := flag.String("redis-url", os.Getenv("DROPFOUR_REDIS_URL"), "if set, store the analyses in the shared Redis cache")
	flag.Parse()

	runner, err := selfplay.NewRunner(selfplay.Config{
		Games:     *games,
		Width:     *width,
		Height:    *height,
		WinLength: *n,
		Budget:    *budget,
		Threshold: config.DefaultAgentThreshold,
		MaxDepth:  *maxDepth,
		Seed:      *seed,
	})
	if err != nil {
		slog.Error("Invalid self-play configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := runner.Run(ctx)
	if err != nil {
		// Keep the games that did finish.
		slog.Warn("Self-play stopped early", "error", err, "games", len(records))
	}

	rows := selfplay.Rows(records)
	if err = selfplay.WriteParquet(*out, rows); err != nil {
		slog.Error("Failed to write parquet", "error", err)
		os.Exit(1)
	}

	slog.Info("Wrote self-play data", "path", *out, "games", len(records), "rows", len(rows))

	if *redisURL == "" {
		return
	}

	// ctx may already be cancelled by an interrupt. The finished games are still worth storing.
	if err = warmCache(context.Background(), *redisURL, selfplay.Analyses(records)); err != nil {
		slog.Error("Failed to store analyses", "error", err)
		os.Exit(1)
	}
}

func warmCache(ctx context.Context, redisURL string, analyses []models.Analysis) error {
	redis, err := services.InitRedis(redisURL)
	if err != nil {
		return err
	}
	defer redis.Close()

	services := services.NewMemoryServices()
	services.Redis = redis

	repo := repository.NewAnalysisRepositoryFromServices(services)
	if err = repo.StoreAll(ctx, analyses); err != nil {
		return err
	}

	slog.Info("Stored analyses in Redis", "positions", services.Analyses.Len())
	return nil
}
