package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/lk16/dropfour/internal/config"
	"github.com/lk16/dropfour/internal/connectn"
)

const (
	DefaultWidth     = 7
	DefaultHeight    = 6
	DefaultWinLength = 4
)

// BoardSize describes the grid and the number of tokens in a row needed to win.
type BoardSize struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	WinLength int `json:"win_length"`
}

// ApplyDefaults replaces an unset size by the classic 7x6 four-in-a-row.
func (s *BoardSize) ApplyDefaults() {
	if s.Width == 0 && s.Height == 0 && s.WinLength == 0 {
		s.Width = DefaultWidth
		s.Height = DefaultHeight
		s.WinLength = DefaultWinLength
	}
}

// Validate checks that a board of this size can be created.
// Each side is bounded before the cell count so the product cannot overflow.
func (s *BoardSize) Validate() error {
	if s.Width > config.MaxBoardCells || s.Height > config.MaxBoardCells || s.Width*s.Height > config.MaxBoardCells {
		return fmt.Errorf("board has more than %d cells", config.MaxBoardCells)
	}

	_, err := connectn.NewBoard(s.Width, s.Height, s.WinLength)
	return err
}

// CreateGameRequest represents the payload for creating a game.
type CreateGameRequest struct {
	BoardSize
}

// MoveRequest represents a move played by a human.
type MoveRequest struct {
	Column int `json:"column"`
}

// AgentMoveRequest asks the agent to play the next move of a game.
type AgentMoveRequest struct {
	BudgetMs int `json:"budget_ms"`
}

// AnalyzeRequest asks for an analysis of the position after Moves.
type AnalyzeRequest struct {
	BoardSize
	Moves    []int `json:"moves"`
	BudgetMs int   `json:"budget_ms"`
}

// Validate validates the analyze request.
func (r *AnalyzeRequest) Validate() error {
	if err := r.BoardSize.Validate(); err != nil {
		return err
	}

	if len(r.Moves) > r.Width*r.Height {
		return errors.New("more moves than cells")
	}

	return nil
}

// ResolveBudget converts a budget in milliseconds, using fallback when it is zero.
func ResolveBudget(budgetMs int, fallback time.Duration) (time.Duration, error) {
	if budgetMs < 0 {
		return 0, errors.New("budget_ms must not be negative")
	}

	if budgetMs == 0 {
		return fallback, nil
	}

	budget := time.Duration(budgetMs) * time.Millisecond
	if budget > config.MaxAgentBudget {
		return 0, fmt.Errorf("budget_ms must not exceed %d", config.MaxAgentBudget.Milliseconds())
	}

	return budget, nil
}

// GameResponse is a game together with its current position.
type GameResponse struct {
	Game
	Board         []string         `json:"board"`
	LegalColumns  []int            `json:"legal_columns"`
	CurrentPlayer string           `json:"current_player"`
	WinningCells  []connectn.Coord `json:"winning_cells"`
}

// NewGameResponse builds a GameResponse, board must be the position of game.
func NewGameResponse(game Game, board *connectn.Board) GameResponse {
	legal := board.LegalColumns()
	if board.IsTerminal() {
		legal = []int{}
	}

	winning := board.WinningCells()
	if winning == nil {
		winning = []connectn.Coord{}
	}

	return GameResponse{
		Game:          game,
		Board:         board.ASCIIArtLines(),
		LegalColumns:  legal,
		CurrentPlayer: board.CurrentPlayer().String(),
		WinningCells:  winning,
	}
}

// AgentMoveResponse is the game after the agent moved, with the analysis behind the move.
type AgentMoveResponse struct {
	Game     GameResponse `json:"game"`
	Analysis Analysis     `json:"analysis"`
}

// ResultStats counts finished games per result.
type ResultStats struct {
	Result string `json:"result"`
	Count  int    `json:"count"`
}
