package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/dropfour/internal/engine"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/repository"
)

// CreateGame handles the creation of a new game.
func CreateGame(c *fiber.Ctx) error {
	var req models.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	game, board, err := engine.NewFromCtx(c).CreateGame(c.Context(), req.BoardSize)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewGameResponse(game, board))
}

// GetGame returns a game with its current position.
func GetGame(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game ID")
	}

	game, board, err := engine.NewFromCtx(c).GetGame(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(game, board))
}

// PlayMove handles a move played by a human.
func PlayMove(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game ID")
	}

	var req models.MoveRequest
	if err = c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	game, board, err := engine.NewFromCtx(c).PlayMove(c.Context(), id, req.Column)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(game, board))
}

// AgentMove lets the agent play the next move of a game.
func AgentMove(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game ID")
	}

	var req models.AgentMoveRequest
	if len(c.Body()) > 0 {
		if err = c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	e := engine.NewFromCtx(c)

	budget, err := models.ResolveBudget(req.BudgetMs, e.DefaultBudget())
	if err != nil {
		return badRequest(c, err.Error())
	}

	game, board, analysis, err := e.AgentMove(c.Context(), id, budget)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.AgentMoveResponse{
		Game:     models.NewGameResponse(game, board),
		Analysis: analysis,
	})
}

// GetResultStats returns the number of finished games per result.
func GetResultStats(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)
	stats, err := repo.GetResultStats(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
