package services

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/dropfour/internal/config"
	"github.com/lk16/dropfour/internal/models"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services and the in-process stores.
// Postgres and Redis are nil when they are not configured.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client

	// Games is used instead of Postgres when it is nil.
	Games *models.GameStore

	// Analyses is consulted before Redis.
	Analyses *models.Cache
}

// NewMemoryServices creates Services without external connections.
func NewMemoryServices() *Services {
	return &Services{
		Games:    models.NewGameStore(),
		Analyses: models.NewCache(),
	}
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := NewMemoryServices()

	// Initialize database
	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	} else {
		slog.Warn("DROPFOUR_POSTGRES_URL is not set, games are kept in memory")
	}

	// Initialize Redis
	if cfg.RedisURL != "" {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		services.Redis = redis
	} else {
		slog.Warn("DROPFOUR_REDIS_URL is not set, analyses and stats are kept in memory")
	}

	return services, nil
}
