package internal

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/dropfour/internal/config"
	"github.com/lk16/dropfour/internal/middleware"
	"github.com/lk16/dropfour/internal/routes"
	"github.com/lk16/dropfour/internal/services"
)

const (
	defaultConcurrency = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout = 10 * time.Second
	defaultIdleTimeout = 5 * time.Second
	defaultBodyLimit   = 64 * 1024
)

// SetupApp loads the configuration, connects to the external services and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	return BuildApp(cfg, services), cfg
}

// BuildApp creates the Fiber app on top of existing services.
func BuildApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	// Responses to agent moves can take the whole search budget.
	writeTimeout := config.MaxAgentBudget + defaultReadTimeout

	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	app.Use(middleware.Recover())

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}
