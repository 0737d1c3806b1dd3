package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/lk16/flippy/versus/internal/config"
	"github.com/lk16/flippy/versus/internal/othello"
	"github.com/lk16/flippy/versus/internal/search"
)

func main() {
	boardString := flag.String("board", "", "the board to evaluate, defaults to the start position")
	depth := flag.Int("depth", 5, "search depth in plies")
	random := flag.Int("random", 0, "evaluate a random board with this many discs instead")
	rulesName := flag.String("rules", othello.OrthogonalRules.String(), "flip directions: orthogonal or standard")
	flag.Parse()

	config.SetLogLevel()

	rules, err := othello.ParseRules(*rulesName)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	engine := othello.NewEngine(rules)

	board := othello.NewBoardStart()
	switch {
	case *random > 0:
		rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
		board, err = engine.RandomBoard(*random, rng)
	case *boardString != "":
		board, err = othello.NewBoardFromString(*boardString)
	}

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Println(board.String())
	fmt.Println(strings.Join(board.ASCIIArtLines(engine.LegalMoves(board)), "\n"))

	result, err := search.New(engine).Search(context.Background(), board, *depth)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if result.Found {
		fmt.Printf("Best move for %s: %s (value %d)\n", board.Turn(), result.Move, result.Value)
	} else {
		fmt.Printf("%s has no legal moves (value %d)\n", board.Turn(), result.Value)
	}

	elapsedSeconds := result.Elapsed.Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(result.Nodes) / elapsedSeconds)
	}

	fmt.Printf("Evaluated %d nodes in %.4fs (%d nodes/s)\n", result.Nodes, elapsedSeconds, nodesPerSecond)
}
