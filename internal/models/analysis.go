package models

import (
	"math"

	"github.com/lk16/dropfour/internal/connectn"
	"github.com/lk16/dropfour/internal/search"
)

const (
	ForcedWin  = "win"
	ForcedLoss = "loss"
)

// Analysis is the result of searching a position.
type Analysis struct {
	// Position is the key of the analyzed board, see connectn.Board.String.
	Position string `json:"position"`

	// Column is the best move found or -1 if there is none.
	Column int `json:"column"`

	// Score is the finite evaluation for the player to move.
	// It is zero when Forced is set.
	Score float64 `json:"score"`

	// Forced is ForcedWin or ForcedLoss when the search proved the outcome.
	Forced string `json:"forced,omitempty"`

	Depth     int    `json:"depth"`
	Nodes     uint64 `json:"nodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Cached    bool   `json:"cached"`
}

// NewAnalysis converts a search outcome into an Analysis.
func NewAnalysis(board *connectn.Board, outcome search.Outcome) Analysis {
	analysis := Analysis{
		Position:  board.String(),
		Column:    outcome.Column,
		Score:     outcome.Score,
		Depth:     outcome.Depth,
		Nodes:     outcome.Nodes,
		ElapsedMs: outcome.Elapsed.Milliseconds(),
	}

	// JSON has no infinities.
	switch {
	case math.IsInf(outcome.Score, 1):
		analysis.Forced = ForcedWin
		analysis.Score = 0
	case math.IsInf(outcome.Score, -1):
		analysis.Forced = ForcedLoss
		analysis.Score = 0
	}

	return analysis
}
