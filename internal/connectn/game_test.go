package connectn //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMoves(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "empty", input: "", want: []int{}},
		{name: "single", input: "3", want: []int{3}},
		{name: "spaces", input: " 3, 3 ,4", want: []int{3, 3, 4}},
		{name: "trailing comma", input: "1,2,", want: []int{1, 2}},
		{name: "invalid", input: "1,a", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			moves, err := ParseMoves(test.input)
			if test.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.want, moves)
		})
	}
}

func TestNewGameFromMoves(t *testing.T) {
	game, err := NewGameFromMoves(7, 6, 4, []int{3, 3, 4})
	require.NoError(t, err)
	require.Equal(t, []int{3, 3, 4}, game.Moves())
	require.Equal(t, 3, game.Board().MoveCount())

	_, err = NewGameFromMoves(7, 6, 4, []int{3, 9})
	require.Error(t, err)

	_, err = NewGameFromMoves(0, 6, 4, nil)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGame_PushMove(t *testing.T) {
	game, err := NewGame(7, 6, 4)
	require.NoError(t, err)

	require.NoError(t, game.PushMove(2))
	require.NoError(t, game.PushMove(5))
	require.Equal(t, []int{2, 5}, game.Moves())
	require.Equal(t, PlayerOne, game.Board().CurrentPlayer())
	require.Equal(t, PlayerTwo, game.Board().At(5, 0))

	require.Error(t, game.PushMove(7))
	require.Equal(t, []int{2, 5}, game.Moves())
}

func TestGame_BoardIsCopy(t *testing.T) {
	game, err := NewGame(7, 6, 4)
	require.NoError(t, err)

	board := game.Board()
	require.True(t, board.Move(0))
	require.Equal(t, 0, game.Board().MoveCount())
}
