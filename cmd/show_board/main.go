package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/dropfour/internal/connectn"
)

func main() {
	movesString := flag.String("moves", "", "comma separated columns played so far")
	width := flag.Int("width", 7, "board width")
	height := flag.Int("height", 6, "board height")
	n := flag.Int("n", 4, "number of stones in a row needed to win")
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
	board.Print()
	fmt.Printf("to move: %s, result: %s\n", board.CurrentPlayer(), board.Result())
}
