package connectn

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Game represents a game, either complete or in progress, as its list of moves.
type Game struct {
	// moves is the list of columns played, in order.
	moves []int

	// board is the position after all moves.
	board *Board
}

// NewGame creates a new empty game.
func NewGame(width, height, n int) (*Game, error) {
	board, err := NewBoard(width, height, n)
	if err != nil {
		return nil, err
	}

	return &Game{
		moves: make([]int, 0),
		board: board,
	}, nil
}

// NewGameFromMoves creates a new game from a list of moves.
func NewGameFromMoves(width, height, n int, moves []int) (*Game, error) {
	game, err := NewGame(width, height, n)
	if err != nil {
		return nil, err
	}

	for _, move := range moves {
		if err := game.PushMove(move); err != nil {
			return nil, fmt.Errorf("failed to push move: %w", err)
		}
	}

	return game, nil
}

// ParseMoves parses a comma separated list of columns such as "3,3,4".
func ParseMoves(s string) ([]int, error) {
	moves := make([]int, 0)

	for _, word := range strings.Split(s, ",") {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		move, err := strconv.Atoi(word)
		if err != nil {
			return nil, fmt.Errorf("failed to parse move %s: %w", word, err)
		}

		moves = append(moves, move)
	}

	return moves, nil
}

// Board returns a copy of the board after all moves.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

// Moves returns a copy of the moves played so far.
func (g *Game) Moves() []int {
	return slices.Clone(g.moves)
}

// PushMove plays a move.
func (g *Game) PushMove(move int) error {
	if !g.board.Move(move) {
		return fmt.Errorf("illegal move: %d", move)
	}

	g.moves = append(g.moves, move)
	return nil
}
