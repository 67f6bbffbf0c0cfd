package connectn //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunLengths(t *testing.T) {
	tests := []struct {
		name  string
		seq   []int
		value int
		want  []Run
	}{
		{
			name:  "single run in the middle",
			seq:   []int{0, 0, 1, 1, 1, 0, 0},
			value: 1,
			want:  []Run{{Start: 2, End: 5, Length: 3}},
		},
		{
			name:  "runs touching both ends",
			seq:   []int{1, 1, 0, 1},
			value: 1,
			want:  []Run{{Start: 0, End: 2, Length: 2}, {Start: 3, End: 4, Length: 1}},
		},
		{
			name:  "whole sequence",
			seq:   []int{-1, -1, -1},
			value: -1,
			want:  []Run{{Start: 0, End: 3, Length: 3}},
		},
		{
			name:  "no match",
			seq:   []int{0, 1, 0},
			value: -1,
			want:  []Run{},
		},
		{
			name:  "empty sequence",
			seq:   []int{},
			value: 1,
			want:  []Run{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, RunLengths(test.seq, test.value))
		})
	}
}

func TestHasRun(t *testing.T) {
	seq := []int{0, 0, 1, 1, 1, 0, 0}

	require.True(t, HasRun(seq, 3, 1))
	require.False(t, HasRun(seq, 4, 1))
	require.True(t, HasRun(seq, 2, 0))
	require.False(t, HasRun([]int{1, 1}, 3, 1))
}

func TestExtractLines_Coordinates(t *testing.T) {
	const width, height = 4, 3
	grid := CoordGrid(width, height)

	tests := []struct {
		name        string
		at          Coord
		wantRow     []Coord
		wantColumn  []Coord
		wantFalling []Coord
		wantRising  []Coord
	}{
		{
			name:        "bottom left corner",
			at:          Coord{Col: 0, Row: 0},
			wantRow:     []Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
			wantColumn:  []Coord{{0, 0}, {0, 1}, {0, 2}},
			wantFalling: []Coord{{0, 0}},
			wantRising:  []Coord{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name:        "center",
			at:          Coord{Col: 1, Row: 1},
			wantRow:     []Coord{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			wantColumn:  []Coord{{1, 0}, {1, 1}, {1, 2}},
			wantFalling: []Coord{{0, 2}, {1, 1}, {2, 0}},
			wantRising:  []Coord{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name:        "right edge",
			at:          Coord{Col: 3, Row: 1},
			wantRow:     []Coord{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			wantColumn:  []Coord{{3, 0}, {3, 1}, {3, 2}},
			wantFalling: []Coord{{2, 2}, {3, 1}},
			wantRising:  []Coord{{2, 0}, {3, 1}},
		},
		{
			name:        "top right corner",
			at:          Coord{Col: 3, Row: 2},
			wantRow:     []Coord{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
			wantColumn:  []Coord{{3, 0}, {3, 1}, {3, 2}},
			wantFalling: []Coord{{3, 2}},
			wantRising:  []Coord{{1, 0}, {2, 1}, {3, 2}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lines := ExtractLines(grid, width, height, test.at)
			require.Equal(t, test.wantRow, lines.Row)
			require.Equal(t, test.wantColumn, lines.Column)
			require.Equal(t, test.wantFalling, lines.Falling)
			require.Equal(t, test.wantRising, lines.Rising)
		})
	}
}

// TestExtractLines_Maximal checks every cell of several grids against a brute force scan.
func TestExtractLines_Maximal(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 5}, {5, 1}, {7, 6}, {3, 8}, {9, 4}}

	for _, size := range sizes {
		width, height := size[0], size[1]
		grid := CoordGrid(width, height)

		for col := 0; col < width; col++ {
			for row := 0; row < height; row++ {
				at := Coord{Col: col, Row: row}
				lines := ExtractLines(grid, width, height, at)

				var wantRising, wantFalling []Coord
				for c := 0; c < width; c++ {
					for r := 0; r < height; r++ {
						if c-r == col-row {
							wantRising = append(wantRising, Coord{Col: c, Row: r})
						}
					}
				}
				for c := 0; c < width; c++ {
					for r := height - 1; r >= 0; r-- {
						if c+r == col+row {
							wantFalling = append(wantFalling, Coord{Col: c, Row: r})
						}
					}
				}

				require.Equal(t, wantRising, lines.Rising, "rising %dx%d at %v", width, height, at)
				require.Equal(t, wantFalling, lines.Falling, "falling %dx%d at %v", width, height, at)
				require.Len(t, lines.Row, width)
				require.Len(t, lines.Column, height)
			}
		}
	}
}
