package selfplay

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/lk16/dropfour/internal/connectn"
	"github.com/lk16/dropfour/internal/search"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Row is one move of a self-play game.
//
// Score is the search score for the player to move, clamped to +/-MaxScore for
// proven wins and losses. Result is the final result of the whole game.
type Row struct {
	GameID    string  `parquet:"game_id,dict"`
	Ply       int32   `parquet:"ply"`
	Width     int32   `parquet:"width"`
	Height    int32   `parquet:"height"`
	WinLength int32   `parquet:"win_length"`
	Position  string  `parquet:"position"`
	Player    int32   `parquet:"player"`
	Column    int32   `parquet:"column"`
	Depth     int32   `parquet:"depth"`
	Nodes     int64   `parquet:"nodes"`
	Score     float64 `parquet:"score"`
	Result    string  `parquet:"result,dict"`
}

// MaxScore replaces infinite scores in exported rows.
const MaxScore = 1e9

func newRow(gameID uuid.UUID, ply int, board *connectn.Board, outcome search.Outcome) Row {
	player := int32(1)
	if board.CurrentPlayer() == connectn.PlayerTwo {
		player = 2
	}

	return Row{
		GameID:    gameID.String(),
		Ply:       int32(ply),
		Width:     int32(board.Width()),
		Height:    int32(board.Height()),
		WinLength: int32(board.WinLength()),
		Position:  board.String(),
		Player:    player,
		Column:    int32(outcome.Column),
		Depth:     int32(outcome.Depth),
		Nodes:     int64(outcome.Nodes),
		Score:     math.Max(-MaxScore, math.Min(MaxScore, outcome.Score)),
	}
}

// Rows flattens the rows of all records.
func Rows(records []GameRecord) []Row {
	rows := make([]Row, 0)
	for _, record := range records {
		rows = append(rows, record.Rows...)
	}
	return rows
}

// WriteParquet writes rows to outPath through a temporary file and a rename.
func WriteParquet(outPath string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "selfplay_move_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
