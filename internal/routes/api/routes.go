package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/dropfour/internal/engine"
	"github.com/lk16/dropfour/internal/middleware"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/repository"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/stats", GetResultStats)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Post("/games/:id/moves", PlayMove)
	apiGroup.Post("/games/:id/agent-move", AgentMove)

	// Analysis routes
	apiGroup.Post("/analyze", Analyze)
}

// errorResponse maps domain errors to a status code and a JSON error body.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrIllegalMove):
		status = fiber.StatusBadRequest
	case errors.Is(err, engine.ErrGameFinished), errors.Is(err, repository.ErrGameConflict):
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
