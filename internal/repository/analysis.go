package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	analysisKeyPrefix = "analysis:"
	analysisTTL       = 24 * time.Hour
)

// AnalysisRepository caches analyses in memory and in Redis, keyed by position.
// Deeper analyses replace shallower ones.
type AnalysisRepository struct {
	services *services.Services
}

// NewAnalysisRepositoryFromServices creates a new AnalysisRepository.
func NewAnalysisRepositoryFromServices(services *services.Services) *AnalysisRepository {
	return &AnalysisRepository{
		services: services,
	}
}

// Lookup returns the cached analysis of a position, if any.
func (repo *AnalysisRepository) Lookup(ctx context.Context, position string) (models.Analysis, bool, error) {
	if analysis, ok := repo.services.Analyses.Lookup(position); ok {
		return analysis, true, nil
	}

	redisConn := repo.services.Redis
	if redisConn == nil {
		return models.Analysis{}, false, nil
	}

	data, err := redisConn.Get(ctx, analysisKeyPrefix+position).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Analysis{}, false, nil
	}

	if err != nil {
		return models.Analysis{}, false, fmt.Errorf("error getting analysis from Redis: %w", err)
	}

	var analysis models.Analysis
	if err = json.Unmarshal(data, &analysis); err != nil {
		return models.Analysis{}, false, fmt.Errorf("error unmarshaling analysis: %w", err)
	}

	repo.services.Analyses.Upsert(analysis)
	return analysis, true, nil
}

// Store saves an analysis unless a deeper one is already known.
func (repo *AnalysisRepository) Store(ctx context.Context, analysis models.Analysis) error {
	repo.services.Analyses.Upsert(analysis)
	return repo.storeRedis(ctx, analysis)
}

// StoreAll saves many analyses, for example those produced by self-play.
// Per position only the deepest one reaches Redis.
func (repo *AnalysisRepository) StoreAll(ctx context.Context, analyses []models.Analysis) error {
	repo.services.Analyses.BulkUpsert(analyses)

	if repo.services.Redis == nil {
		return nil
	}

	stored := make(map[string]bool, len(analyses))

	for _, analysis := range analyses {
		if stored[analysis.Position] {
			continue
		}

		deepest, ok := repo.services.Analyses.Lookup(analysis.Position)
		if !ok {
			continue
		}

		if err := repo.storeRedis(ctx, deepest); err != nil {
			return err
		}
		stored[analysis.Position] = true
	}

	return nil
}

func (repo *AnalysisRepository) storeRedis(ctx context.Context, analysis models.Analysis) error {
	redisConn := repo.services.Redis
	if redisConn == nil || analysis.Column == -1 {
		return nil
	}

	analysis.Cached = false

	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("error marshaling analysis: %w", err)
	}

	key := analysisKeyPrefix + analysis.Position

	err = redisConn.Watch(ctx, func(tx *redis.Tx) error {
		found, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		if err == nil {
			var existing models.Analysis
			if json.Unmarshal(found, &existing) == nil && existing.Depth >= analysis.Depth {
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, analysisTTL)
			return nil
		})
		return err
	}, key)

	// Someone else stored an analysis of the same position in the meantime.
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("error storing analysis in Redis: %w", err)
	}

	return nil
}
