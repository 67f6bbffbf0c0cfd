package heuristic

import (
	"math"

	"github.com/lk16/dropfour/internal/connectn"
)

const (
	openTwoScore   = 1
	openThreeScore = 10

	// opponentWeight makes threats of the opponent count more than our own.
	opponentWeight = 3
)

// Heuristic scores a board from the perspective of the player to move.
type Heuristic interface {
	Evaluate(board *connectn.Board) float64
}

// Pattern is the default Heuristic. It counts open twos and open threes along
// rows, columns and diagonals. Overlapping patterns are counted multiple times.
type Pattern struct{}

// Evaluate returns +Inf if the current player won, -Inf if the opponent won and
// otherwise the pattern potential of the current player minus three times that
// of the opponent.
func (Pattern) Evaluate(board *connectn.Board) float64 {
	player := board.CurrentPlayer()

	switch board.Result().Winner() {
	case player:
		return math.Inf(1)
	case player.Opponent():
		return math.Inf(-1)
	}

	own := Potential(board, player)

	// An open three on both ends cannot be stopped, and we are the one to move.
	if math.IsInf(own, 1) {
		return own
	}

	return own - opponentWeight*Potential(board, player.Opponent())
}

// Potential sums the pattern scores of all tokens of player.
func Potential(board *connectn.Board, player connectn.Cell) float64 {
	s := scanner{
		board:  board,
		player: player,
		width:  board.Width(),
		height: board.Height(),
	}

	score := 0.0
	for col := 0; col < s.width; col++ {
		for row := 0; row < s.height; row++ {
			if board.At(col, row) != player {
				continue
			}

			rowScore := s.scanRow(col, row)
			if math.IsInf(rowScore, 1) {
				return rowScore
			}

			score += rowScore + s.scanColumn(col, row) + s.scanDiagonals(col, row)
		}
	}

	return score
}

type scanner struct {
	board  *connectn.Board
	player connectn.Cell
	width  int
	height int
}

func (s scanner) own(col, row int) bool {
	return s.board.At(col, row) == s.player
}

func (s scanner) empty(col, row int) bool {
	return s.board.At(col, row) == connectn.Empty
}

// scanRow looks three cells ahead and behind along the row.
// A three with both ends open returns +Inf.
func (s scanner) scanRow(col, row int) float64 {
	score := 0.0

	for _, dir := range []int{1, -1} {
		end := col + 3*dir
		if end < 0 || end >= s.width {
			continue
		}

		if !s.own(col+dir, row) {
			continue
		}

		switch {
		case s.empty(col+2*dir, row):
			score += openTwoScore
		case s.own(col+2*dir, row) && s.empty(end, row):
			behind := col - dir
			if behind >= 0 && behind < s.width && s.empty(behind, row) {
				return math.Inf(1)
			}
			score += openThreeScore
		}
	}

	return score
}

// scanColumn only looks upwards: cells below a token are never empty.
func (s scanner) scanColumn(col, row int) float64 {
	if row+3 >= s.height || !s.own(col, row+1) {
		return 0
	}

	switch {
	case s.empty(col, row+2):
		return openTwoScore
	case s.own(col, row+2) && s.empty(col, row+3):
		return openThreeScore
	}

	return 0
}

// scanDiagonals looks up-right and up-left, only where all four cells are on the board.
func (s scanner) scanDiagonals(col, row int) float64 {
	if row+3 >= s.height {
		return 0
	}

	score := 0.0

	for _, dir := range []int{1, -1} {
		end := col + 3*dir
		if end < 0 || end >= s.width {
			continue
		}

		if !s.own(col+dir, row+1) {
			continue
		}

		switch {
		case s.empty(col+2*dir, row+2):
			score += openTwoScore
		case s.own(col+2*dir, row+2) && s.empty(end, row+3):
			score += openThreeScore
		}
	}

	return score
}
