package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/dropfour/internal/connectn"
)

// ErrIllegalMove is returned when a move cannot be played on a game.
var ErrIllegalMove = errors.New("illegal move")

// Game is a persisted game between a human and the agent, or two agents.
type Game struct {
	ID        uuid.UUID `json:"id"         db:"id"`
	Width     int       `json:"width"      db:"width"`
	Height    int       `json:"height"     db:"height"`
	WinLength int       `json:"win_length" db:"win_length"`
	Moves     Moves     `json:"moves"      db:"moves"`
	Result    string    `json:"result"     db:"result"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewGame creates a new game without moves.
func NewGame(width, height, winLength int) (Game, error) {
	if _, err := connectn.NewBoard(width, height, winLength); err != nil {
		return Game{}, err
	}

	now := time.Now().UTC()

	return Game{
		ID:        uuid.New(),
		Width:     width,
		Height:    height,
		WinLength: winLength,
		Moves:     Moves{},
		Result:    connectn.Ongoing.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Board replays the moves of the game.
func (g *Game) Board() (*connectn.Board, error) {
	board, err := connectn.NewBoardFromMoves(g.Width, g.Height, g.WinLength, g.Moves)
	if err != nil {
		return nil, fmt.Errorf("error replaying game %s: %w", g.ID, err)
	}
	return board, nil
}

// Play appends column to the game and returns the resulting board.
func (g *Game) Play(column int) (*connectn.Board, error) {
	board, err := g.Board()
	if err != nil {
		return nil, err
	}

	if !board.Move(column) {
		return nil, fmt.Errorf("%w: column %d", ErrIllegalMove, column)
	}

	g.Moves = append(g.Moves, column)
	g.Result = board.Result().String()
	g.UpdatedAt = time.Now().UTC()

	return board, nil
}

// IsFinished returns whether no more moves can be played.
func (g *Game) IsFinished() bool {
	return g.Result != connectn.Ongoing.String()
}
