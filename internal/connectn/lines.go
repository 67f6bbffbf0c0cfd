package connectn

// Coord is a cell coordinate. Row 0 is the bottom row.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Lines holds the four full lines passing through a cell.
type Lines[T any] struct {
	Row     []T // left to right
	Column  []T // bottom to top
	Falling []T // top-left to bottom-right
	Rising  []T // bottom-left to top-right
}

// All returns the lines in a fixed order: row, column, falling, rising.
func (l Lines[T]) All() [4][]T {
	return [4][]T{l.Row, l.Column, l.Falling, l.Rising}
}

// Run is a maximal half-open run [Start, End) of identical values.
type Run struct {
	Start  int
	End    int
	Length int
}

// ExtractLines returns the lines through at in a column-major grid of the given size.
// Cells are indexed as col*height + row. No line reads outside the grid.
func ExtractLines[T any](cells []T, width, height int, at Coord) Lines[T] {
	col, row := at.Col, at.Row

	// reflected coordinates: distance to the right and top edges
	colR := width - 1 - col
	rowR := height - 1 - row

	lines := Lines[T]{
		Row:    make([]T, 0, width),
		Column: make([]T, 0, height),
	}

	for c := 0; c < width; c++ {
		lines.Row = append(lines.Row, cells[c*height+row])
	}

	lines.Column = append(lines.Column, cells[col*height:(col+1)*height]...)

	// Rising diagonal: back off towards bottom-left until an edge is hit.
	back := min(col, row)
	ahead := min(colR, rowR)
	lines.Rising = walk(cells, height, Coord{Col: col - back, Row: row - back}, 1, back+ahead+1)

	// Falling diagonal: back off towards top-left until an edge is hit.
	back = min(col, rowR)
	ahead = min(colR, row)
	lines.Falling = walk(cells, height, Coord{Col: col - back, Row: row + back}, -1, back+ahead+1)

	return lines
}

// walk collects length cells starting at start, stepping one column right and dRow rows per step.
func walk[T any](cells []T, height int, start Coord, dRow, length int) []T {
	line := make([]T, length)
	for i := 0; i < length; i++ {
		line[i] = cells[(start.Col+i)*height+start.Row+i*dRow]
	}
	return line
}

// CoordGrid returns a column-major grid where every cell holds its own coordinate.
func CoordGrid(width, height int) []Coord {
	grid := make([]Coord, width*height)
	for col := 0; col < width; col++ {
		for row := 0; row < height; row++ {
			grid[col*height+row] = Coord{Col: col, Row: row}
		}
	}
	return grid
}

// RunLengths returns all maximal runs of value in seq.
// For example RunLengths([0,0,1,1,1,0,0], 1) returns a single run {2, 5, 3}.
func RunLengths[T comparable](seq []T, value T) []Run {
	runs := make([]Run, 0)

	// The sequence is bracketed by virtual mismatches at -1 and len(seq),
	// so every run has both a rising and a falling transition.
	prev := false
	start := 0
	for i := 0; i <= len(seq); i++ {
		cur := i < len(seq) && seq[i] == value

		switch {
		case cur && !prev:
			start = i
		case !cur && prev:
			runs = append(runs, Run{Start: start, End: i, Length: i - start})
		}

		prev = cur
	}

	return runs
}

// HasRun reports whether seq contains at least n consecutive copies of value.
func HasRun[T comparable](seq []T, n int, value T) bool {
	if len(seq) < n {
		return false
	}

	for _, run := range RunLengths(seq, value) {
		if run.Length >= n {
			return true
		}
	}
	return false
}
