package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	DefaultAgentBudget    = 1000 * time.Millisecond
	DefaultAgentThreshold = 20 * time.Millisecond
	MaxAgentBudget        = 10 * time.Second

	// MaxBoardCells bounds the size of boards accepted over the API.
	MaxBoardCells = 400
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
	Agent             AgentConfig
}

// AgentConfig holds the settings of the search agent used by the server.
type AgentConfig struct {
	// MaxDepth caps the search depth, zero means no cap.
	MaxDepth  int
	Threshold time.Duration

	// Budget is used when a request does not specify one.
	Budget time.Duration
}

// LoadServerConfig loads configuration from environment variables.
// Postgres and Redis are optional, in-process stores are used when they are not set.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("DROPFOUR_SERVER_HOST"),
		ServerPort:        getEnvMust("DROPFOUR_SERVER_PORT"),
		RedisURL:          os.Getenv("DROPFOUR_REDIS_URL"),
		PostgresURL:       os.Getenv("DROPFOUR_POSTGRES_URL"),
		BasicAuthUsername: getEnvMust("DROPFOUR_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("DROPFOUR_BASIC_AUTH_PASS"),
		Token:             getEnvMust("DROPFOUR_TOKEN"),
		Prefork:           getEnvMustBool("DROPFOUR_PREFORK"),
		Agent:             LoadAgentConfig(),
	}
}

// LoadAgentConfig loads the agent settings, falling back to defaults.
func LoadAgentConfig() AgentConfig {
	return AgentConfig{
		MaxDepth:  getEnvInt("DROPFOUR_AGENT_MAX_DEPTH", 0),
		Threshold: getEnvMilliseconds("DROPFOUR_AGENT_THRESHOLD_MS", DefaultAgentThreshold),
		Budget:    getEnvMilliseconds("DROPFOUR_AGENT_BUDGET_MS", DefaultAgentBudget),
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

// getEnvInt returns fallback if the variable is not set and exits if it is not a non-negative integer.
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		slog.Error("Cannot load environment variable, it must be a non-negative integer", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}

func getEnvMilliseconds(key string, fallback time.Duration) time.Duration {
	ms := getEnvInt(key, -1)
	if ms == -1 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
