package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lk16/dropfour/internal/config"
	"github.com/lk16/dropfour/internal/connectn"
	"github.com/lk16/dropfour/internal/engine"
	"github.com/lk16/dropfour/internal/services"
)

func main() {
	config.SetLogLevel()

	movesString := flag.String("moves", "", "comma separated columns played so far")
	width := flag.Int("width", 7, "board width")
	height := flag.Int("height", 6, "board height")
	n := flag.Int("n", 4, "number of stones in a row needed to win")
	budget := flag.Duration("budget", config.DefaultAgentBudget, "thinking time")
	maxDepth := flag.Int("max-depth", 0, "maximum search depth, 0 means no limit")
	flag.Parse()

	moves, err := connectn.ParseMoves(*movesString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	board, err := connectn.NewBoardFromMoves(*width, *height, *n, moves)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	eng := engine.New(services.NewMemoryServices(), config.AgentConfig{
		MaxDepth:  *maxDepth,
		Threshold: config.DefaultAgentThreshold,
		Budget:    *budget,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *budget+time.Second)
	defer cancel()

	analysis, err := eng.Analyze(ctx, board, *budget)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	board.Print()

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(analysis); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
