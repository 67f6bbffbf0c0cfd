package models //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovesScan(t *testing.T) {
	tests := []struct {
		name       string
		input      interface{}
		wantErr    bool
		wantErrMsg string
		wantMoves  Moves
	}{
		{
			name:      "OK",
			input:     []byte("{1,2,3}"),
			wantMoves: Moves{1, 2, 3},
		},
		{
			name:      "String",
			input:     "{3,3}",
			wantMoves: Moves{3, 3},
		},
		{
			name:      "Empty",
			input:     []byte("{}"),
			wantMoves: Moves{},
		},
		{
			name:       "InvalidType",
			input:      123,
			wantErr:    true,
			wantErrMsg: "cannot scan int into Moves",
		},
		{
			name:       "NilBytes",
			input:      []byte(nil),
			wantErr:    true,
			wantErrMsg: "cannot scan nil into Moves",
		},
		{
			name:       "BrokenInt",
			input:      []byte("{1,abc,3}"),
			wantErr:    true,
			wantErrMsg: "cannot convert abc to int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var moves Moves
			err := moves.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantMoves, moves)
		})
	}
}
