package connectn

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Cell is the content of a single board cell.
type Cell int8

const (
	Empty     Cell = 0
	PlayerOne Cell = 1
	PlayerTwo Cell = -1
)

// Opponent returns the other player. Empty has no opponent and is returned as is.
func (c Cell) Opponent() Cell {
	return -c
}

// String returns the string representation of the cell.
func (c Cell) String() string {
	switch c {
	case PlayerOne:
		return "x"
	case PlayerTwo:
		return "o"
	default:
		return "."
	}
}

// Result is the outcome of a game.
type Result int

const (
	Ongoing Result = iota
	PlayerOneWins
	PlayerTwoWins
	Draw
)

// String returns the string representation of the result.
func (r Result) String() string {
	switch r {
	case PlayerOneWins:
		return "player_one_wins"
	case PlayerTwoWins:
		return "player_two_wins"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// Winner returns the winning player, or Empty for a draw or ongoing game.
func (r Result) Winner() Cell {
	switch r {
	case PlayerOneWins:
		return PlayerOne
	case PlayerTwoWins:
		return PlayerTwo
	default:
		return Empty
	}
}

func winFor(player Cell) Result {
	if player == PlayerOne {
		return PlayerOneWins
	}
	return PlayerTwoWins
}

// ErrInvalidConfiguration is returned when a board cannot be constructed.
var ErrInvalidConfiguration = errors.New("invalid board configuration")

// Board is a gravity-drop connection game in progress.
type Board struct {
	width  int
	height int
	n      int

	// cells is column-major: cells[col*height+row], row 0 is the bottom.
	cells []Cell

	// fill counts the tokens in each column
	fill []int

	// legal lists the columns that are not full, in increasing order
	legal []int

	turn        Cell
	moveCount   int
	lastMove    Coord
	hasLastMove bool
	result      Result
}

// NewBoard creates an empty board on which n in a row wins.
func NewBoard(width, height, n int) (*Board, error) {
	if width <= 0 || height <= 0 || n < 2 || (n > width && n > height) {
		return nil, fmt.Errorf("%w: %dx%d grid with %d in a row", ErrInvalidConfiguration, width, height, n)
	}

	legal := make([]int, width)
	for col := range legal {
		legal[col] = col
	}

	return &Board{
		width:  width,
		height: height,
		n:      n,
		cells:  make([]Cell, width*height),
		fill:   make([]int, width),
		legal:  legal,
		turn:   PlayerOne,
		result: Ongoing,
	}, nil
}

// NewBoardMust works like NewBoard but panics on invalid configuration.
func NewBoardMust(width, height, n int) *Board {
	b, err := NewBoard(width, height, n)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromMoves creates a board and plays the given columns in order.
func NewBoardFromMoves(width, height, n int, moves []int) (*Board, error) {
	b, err := NewBoard(width, height, n)
	if err != nil {
		return nil, err
	}

	for i, col := range moves {
		if !b.Move(col) {
			return nil, fmt.Errorf("illegal move %d at ply %d", col, i)
		}
	}

	return b, nil
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	clone.cells = slices.Clone(b.cells)
	clone.fill = slices.Clone(b.fill)
	clone.legal = slices.Clone(b.legal)
	return &clone
}

// CloneAndMove returns a clone with the move applied. The receiver is never modified.
func (b *Board) CloneAndMove(col int) *Board {
	clone := b.Clone()
	clone.Move(col)
	return clone
}

// Move drops a token of the current player in col.
// It returns false and leaves the board untouched if the move is not legal.
func (b *Board) Move(col int) bool {
	if b.result != Ongoing || col < 0 || col >= b.width || b.fill[col] >= b.height {
		return false
	}

	row := b.fill[col]
	b.cells[col*b.height+row] = b.turn
	b.fill[col]++

	if b.fill[col] == b.height {
		b.legal = slices.DeleteFunc(b.legal, func(c int) bool { return c == col })
	}

	b.moveCount++
	b.lastMove = Coord{Col: col, Row: row}
	b.hasLastMove = true
	b.result = b.computeResult()

	if b.result == Ongoing {
		b.turn = b.turn.Opponent()
	}

	return true
}

// computeResult checks the four lines through the last move for the player who made it.
func (b *Board) computeResult() Result {
	// No line of n can exist before the first player placed n tokens.
	if b.moveCount >= 2*b.n-1 {
		lines := ExtractLines(b.cells, b.width, b.height, b.lastMove)
		for _, line := range lines.All() {
			if HasRun(line, b.n, b.turn) {
				return winFor(b.turn)
			}
		}
	}

	if b.moveCount == len(b.cells) {
		return Draw
	}

	return Ongoing
}

// WinningCells returns the coordinates of the decisive run, or nil if nobody won.
func (b *Board) WinningCells() []Coord {
	winner := b.result.Winner()
	if winner == Empty {
		return nil
	}

	lines := ExtractLines(b.cells, b.width, b.height, b.lastMove).All()
	coords := ExtractLines(CoordGrid(b.width, b.height), b.width, b.height, b.lastMove).All()

	for i, line := range lines {
		for _, run := range RunLengths(line, winner) {
			if run.Length >= b.n {
				return slices.Clone(coords[i][run.Start:run.End])
			}
		}
	}

	return nil
}

// Result returns the cached game outcome.
func (b *Board) Result() Result {
	return b.result
}

// IsTerminal reports whether the game is over or no column accepts a token.
func (b *Board) IsTerminal() bool {
	return b.result != Ongoing || len(b.legal) == 0
}

// LegalColumns returns the columns that are not full, in increasing order.
func (b *Board) LegalColumns() []int {
	return slices.Clone(b.legal)
}

// IsLegal reports whether col is a legal move.
func (b *Board) IsLegal(col int) bool {
	return b.result == Ongoing && col >= 0 && col < b.width && b.fill[col] < b.height
}

// CurrentPlayer returns the player to move, or the winner once the game is won.
func (b *Board) CurrentPlayer() Cell {
	return b.turn
}

// MoveCount returns the number of tokens placed.
func (b *Board) MoveCount() int {
	return b.moveCount
}

// LastMove returns the coordinate of the last placed token.
func (b *Board) LastMove() (Coord, bool) {
	return b.lastMove, b.hasLastMove
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// WinLength returns the number of tokens in a row needed to win.
func (b *Board) WinLength() int {
	return b.n
}

// At returns the cell at col, row. Out of bounds coordinates are Empty.
func (b *Board) At(col, row int) Cell {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return Empty
	}
	return b.cells[col*b.height+row]
}

// Cells returns a copy of the column-major grid.
func (b *Board) Cells() []Cell {
	return slices.Clone(b.cells)
}

// ColumnFill returns the number of tokens in col.
func (b *Board) ColumnFill(col int) int {
	return b.fill[col]
}

// ASCIIArtLines returns the ascii art lines for the board, top row first.
func (b *Board) ASCIIArtLines() []string {
	winning := make(map[Coord]bool)
	for _, coord := range b.WinningCells() {
		winning[coord] = true
	}

	lines := make([]string, 0, b.height+2)

	header := "+"
	for col := 0; col < b.width; col++ {
		header += fmt.Sprintf("%d", col%10) + "-"
	}
	lines = append(lines, header[:len(header)-1]+"+")

	for row := b.height - 1; row >= 0; row-- {
		var builder strings.Builder
		builder.WriteString("|")

		for col := 0; col < b.width; col++ {
			cell := b.At(col, row)
			s := cell.String()
			if winning[Coord{Col: col, Row: row}] {
				s = strings.ToUpper(s)
			}
			builder.WriteString(s)

			if col < b.width-1 {
				builder.WriteString(" ")
			}
		}

		builder.WriteString("|")
		lines = append(lines, builder.String())
	}

	lines = append(lines, "+"+strings.Repeat("-", 2*b.width-1)+"+")
	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b *Board) Print() {
	for _, line := range b.ASCIIArtLines() {
		fmt.Println(line)
	}
}

// String returns a compact representation that identifies the position,
// for example "3x2n2:x.o...-x".
func (b *Board) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%dx%dn%d:", b.width, b.height, b.n)

	for _, cell := range b.cells {
		builder.WriteString(cell.String())
	}

	builder.WriteString("-")
	builder.WriteString(b.turn.String())
	return builder.String()
}
