// Package terminal plays a game against the AI on a text terminal.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/lk16/flippy/versus/internal/config"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/othello"
)

var ErrQuit = errors.New("player quit")

type Terminal struct {
	controller *game.Controller
	in         *bufio.Scanner
	out        io.Writer

	// shown is the number of history entries that were printed already
	shown int
}

func New(controller *game.Controller, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		controller: controller,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Run plays a single game and returns its result. It returns ErrQuit when the
// player types "quit" and io.ErrUnexpectedEOF when the input ends early.
func (t *Terminal) Run(ctx context.Context, difficulty game.Difficulty, human othello.Cell) (game.Result, error) {
	s, err := t.controller.NewSession(ctx, uuid.NewString(), difficulty, human)
	if err != nil {
		return game.Result{}, err
	}

	t.shown = 0
	t.printf("You play %s against the %s AI. Type a field like d3, \"hint\" or \"quit\".\n", human, difficulty)

	for !s.IsFinished() {
		t.printHistory(s)
		t.printBoard(s)

		move, err := t.readMove(ctx, s)
		if err != nil {
			return game.Result{}, err
		}

		if err = t.controller.Play(ctx, s, move); err != nil {
			if errors.Is(err, othello.ErrIllegalMove) {
				t.printf("%v\n", err)
				continue
			}
			return game.Result{}, err
		}
	}

	t.printHistory(s)
	t.printBoard(s)

	result := t.controller.Result(s)
	t.printf("Game over: white %d, black %d. %s\n", result.White, result.Black, outcomeMessage(result.HumanOutcome()))

	return result, nil
}

func (t *Terminal) readMove(ctx context.Context, s *game.Session) (othello.Move, error) {
	for {
		t.printf("%s> ", s.Human)

		if !t.in.Scan() {
			if err := t.in.Err(); err != nil {
				return othello.Move{}, err
			}
			return othello.Move{}, io.ErrUnexpectedEOF
		}

		input := strings.ToLower(strings.TrimSpace(t.in.Text()))

		switch input {
		case "":
			continue
		case "quit", "q":
			return othello.Move{}, ErrQuit
		case "hint", "h":
			move, found, err := t.controller.Hint(ctx, s, config.DefaultHintDepth)
			if err != nil {
				return othello.Move{}, err
			}
			if found {
				t.printf("Hint: %s\n", move)
			}
			continue
		}

		move, err := othello.ParseMove(input)
		if err != nil {
			t.printf("%v\n", err)
			continue
		}

		return move, nil
	}
}

// printHistory prints the turns played since the last call, except the moves of the human.
func (t *Terminal) printHistory(s *game.Session) {
	for _, turn := range s.History[t.shown:] {
		switch {
		case turn.Move == nil:
			t.printf("%s passes\n", turn.Color)
		case turn.Color != s.Human:
			t.printf("%s plays %s\n", turn.Color, turn.Move)
		}
	}

	t.shown = len(s.History)
}

func (t *Terminal) printBoard(s *game.Session) {
	engine := t.controller.Engine()

	var legal []othello.Move
	if !s.IsFinished() {
		legal = engine.LegalMoves(s.Board)
	}

	for _, line := range s.Board.ASCIIArtLines(legal) {
		t.printf("%s\n", line)
	}

	white, black := engine.CountPieces(s.Board)
	t.printf("● black %d  ○ white %d\n", black, white)
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func outcomeMessage(outcome string) string {
	switch outcome {
	case "win":
		return "You win!"
	case "loss":
		return "You lose."
	default:
		return "It's a draw."
	}
}
