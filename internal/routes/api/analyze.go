package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/dropfour/internal/connectn"
	"github.com/lk16/dropfour/internal/engine"
	"github.com/lk16/dropfour/internal/models"
)

// Analyze handles analysis requests for arbitrary positions.
func Analyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	e := engine.NewFromCtx(c)

	budget, err := models.ResolveBudget(req.BudgetMs, e.DefaultBudget())
	if err != nil {
		return badRequest(c, err.Error())
	}

	board, err := connectn.NewBoardFromMoves(req.Width, req.Height, req.WinLength, req.Moves)
	if err != nil {
		return badRequest(c, err.Error())
	}

	analysis, err := e.Analyze(c.Context(), board, budget)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(analysis)
}
