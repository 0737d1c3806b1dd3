// Package game sequences the turns of a human against the AI.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lk16/flippy/versus/internal/othello"
	"github.com/lk16/flippy/versus/internal/search"
)

// Controller plays the AI side of sessions. It holds no session state.
type Controller struct {
	engine   *othello.Engine
	searcher *search.Searcher
	now      func() time.Time
}

// NewController creates a new Controller.
func NewController(engine *othello.Engine) *Controller {
	return &Controller{
		engine:   engine,
		searcher: search.New(engine),
		now:      time.Now,
	}
}

// Engine returns the engine used by the controller.
func (c *Controller) Engine() *othello.Engine {
	return c.engine
}

// NewSession starts a game from the opening position. If the human plays white,
// the AI makes the first move before NewSession returns.
func (c *Controller) NewSession(ctx context.Context, id string, difficulty Difficulty, human othello.Cell) (*Session, error) {
	if !human.IsPlayer() {
		return nil, fmt.Errorf("invalid human color: %s", human)
	}

	now := c.now()
	s := &Session{
		ID:         id,
		Board:      othello.NewBoardStart(),
		Human:      human,
		Difficulty: difficulty,
		Status:     InProgress,
		History:    make([]Turn, 0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.advance(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Play applies a move of the human and lets the AI reply until the human is to move again
// or the game ends. On error the session is left unchanged.
func (c *Controller) Play(ctx context.Context, s *Session, move othello.Move) error {
	if s.IsFinished() {
		return ErrGameOver
	}

	if s.Board.Turn() != s.Human {
		return ErrNotYourTurn
	}

	board, err := c.engine.ApplyMove(s.Board, move)
	if err != nil {
		return err
	}

	// Work on a copy so a cancelled AI search leaves s untouched.
	next := *s
	next.History = append(make([]Turn, 0, len(s.History)+2), s.History...)
	next.Board = board
	next.record(s.Human, &move)

	if err = c.advance(ctx, &next); err != nil {
		return err
	}

	*s = next
	return nil
}

// Hint returns the move the searcher would play for the human.
func (c *Controller) Hint(ctx context.Context, s *Session, depth int) (othello.Move, bool, error) {
	if s.IsFinished() {
		return othello.Move{}, false, ErrGameOver
	}

	if s.Board.Turn() != s.Human {
		return othello.Move{}, false, ErrNotYourTurn
	}

	result, err := c.searcher.Search(ctx, s.Board, depth)
	if err != nil {
		return othello.Move{}, false, err
	}

	return result.Move, result.Found, nil
}

// Result returns the outcome of a session. Counts are current even for unfinished sessions.
func (c *Controller) Result(s *Session) Result {
	white, black := c.engine.CountPieces(s.Board)

	return Result{
		SessionID:  s.ID,
		Difficulty: s.Difficulty,
		Human:      s.Human,
		White:      white,
		Black:      black,
		Winner:     c.engine.Winner(s.Board),
		Moves:      s.Transcript(),
		FinishedAt: s.UpdatedAt,
	}
}

// advance passes and plays AI moves until it is the human's turn with a legal move, or the game is over.
func (c *Controller) advance(ctx context.Context, s *Session) error {
	defer func() {
		s.UpdatedAt = c.now()
	}()

	for {
		if c.engine.IsGameOver(s.Board) {
			s.Status = Finished
			white, black := c.engine.CountPieces(s.Board)
			slog.Info("Game finished", "game_id", s.ID, "white", white, "black", black)
			return nil
		}

		turn := s.Board.Turn()

		if !c.engine.HasLegalMoves(s.Board) {
			passed, err := c.engine.PassTurn(s.Board)
			if err != nil {
				return fmt.Errorf("failed to pass: %w", err)
			}

			slog.Debug("Player passes", "game_id", s.ID, "color", turn)
			s.Board = passed
			s.record(turn, nil)
			continue
		}

		if turn == s.Human {
			return nil
		}

		result, err := c.searcher.Search(ctx, s.Board, s.Difficulty.Depth())
		if err != nil {
			return fmt.Errorf("AI search failed: %w", err)
		}

		board, err := c.engine.ApplyMove(s.Board, result.Move)
		if err != nil {
			return fmt.Errorf("AI played an illegal move: %w", err)
		}

		slog.Info(
			"AI moved",
			"game_id", s.ID,
			"move", result.Move.String(),
			"value", result.Value,
			"nodes", result.Nodes,
			"elapsed", result.Elapsed,
		)

		move := result.Move
		s.Board = board
		s.record(turn, &move)
	}
}
