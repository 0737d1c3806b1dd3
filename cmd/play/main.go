package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lk16/flippy/versus/internal/config"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/othello"
	"github.com/lk16/flippy/versus/internal/terminal"
)

func main() {
	config.LoadDotEnv()

	difficultyName := flag.String("difficulty", "medium", "AI strength: easy, medium or hard")
	colorName := flag.String("color", "black", "the color you play: black or white")
	rulesName := flag.String("rules", config.LoadRules().String(), "flip directions: orthogonal or standard")
	flag.Parse()

	config.SetLogLevel()

	difficulty, err := game.ParseDifficulty(*difficultyName)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	human, err := othello.ParseCell(*colorName)
	if err != nil || !human.IsPlayer() {
		fmt.Printf("invalid color: %q\n", *colorName)
		os.Exit(1)
	}

	rules, err := othello.ParseRules(*rulesName)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	controller := game.NewController(othello.NewEngine(rules))

	_, err = terminal.New(controller, os.Stdin, os.Stdout).Run(ctx, difficulty, human)
	if err != nil && !errors.Is(err, terminal.ErrQuit) {
		fmt.Println(err)
		os.Exit(1)
	}
}
