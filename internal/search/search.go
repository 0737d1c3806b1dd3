// Package search picks moves with a depth-limited minimax search with alpha-beta pruning.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/lk16/flippy/versus/internal/othello"
)

const (
	minScore = math.MinInt
	maxScore = math.MaxInt
)

// Result is the outcome of a search.
type Result struct {
	// Move is the best move, only meaningful when Found is true.
	Move othello.Move

	// Found is false when the side to move has no legal moves.
	Found bool

	// Value is the minimax value of the best move for the side to move at the root.
	Value int

	// Nodes is the number of visited nodes.
	Nodes uint64

	// Elapsed is the duration of the search.
	Elapsed time.Duration
}

// Searcher searches game trees of an Engine. A Searcher keeps no state between searches
// and can be shared between goroutines.
type Searcher struct {
	engine *othello.Engine
}

// New creates a new Searcher.
func New(engine *othello.Engine) *Searcher {
	return &Searcher{engine: engine}
}

// Utility returns the disc difference from the point of view of perspective.
func (s *Searcher) Utility(b othello.Board, perspective othello.Cell) int {
	white, black := s.engine.CountPieces(b)
	if perspective == othello.White {
		return white - black
	}
	return black - white
}

// BestMove returns the best move for the side to move when searching depth plies deep.
// It returns false if the side to move has no legal moves.
func (s *Searcher) BestMove(b othello.Board, depth int) (othello.Move, bool) {
	// Without cancellation the search cannot fail.
	result, _ := s.Search(context.Background(), b, depth)
	return result.Move, result.Found
}

// Search works like BestMove, but also reports the value and statistics of the search.
// The context is checked on every visited node. Depths below 1 are treated as 1.
func (s *Searcher) Search(ctx context.Context, b othello.Board, depth int) (Result, error) {
	if depth < 1 {
		depth = 1
	}

	run := &searchRun{
		ctx:         ctx,
		engine:      s.engine,
		searcher:    s,
		perspective: b.Turn(),
		startTime:   time.Now(),
	}

	result, err := run.root(b, depth)
	result.Nodes = run.nodes
	result.Elapsed = time.Since(run.startTime)

	if err != nil {
		return result, err
	}

	slog.Debug(
		"search done",
		"board", b.String(),
		"depth", depth,
		"move", result.Move.String(),
		"value", result.Value,
		"nodes", result.Nodes,
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// searchRun holds the state of a single search.
type searchRun struct {
	ctx         context.Context
	engine      *othello.Engine
	searcher    *Searcher
	perspective othello.Cell
	startTime   time.Time
	nodes       uint64
}

func (r *searchRun) root(b othello.Board, depth int) (Result, error) {
	if err := r.enter(); err != nil {
		return Result{}, err
	}

	moves := r.engine.LegalMoves(b)
	if len(moves) == 0 {
		return Result{}, nil
	}

	result := Result{Found: true, Value: minScore}
	alpha, beta := minScore, maxScore

	for _, move := range moves {
		value, err := r.minValue(r.mustApply(b, move), depth-1, alpha, beta)
		if err != nil {
			return Result{}, err
		}

		// Strict comparison keeps the first of equally good moves.
		if value > result.Value {
			result.Value = value
			result.Move = move
		}

		alpha = max(alpha, result.Value)
	}

	return result, nil
}

func (r *searchRun) maxValue(b othello.Board, depth, alpha, beta int) (int, error) {
	if err := r.enter(); err != nil {
		return 0, err
	}

	if depth == 0 || r.engine.IsGameOver(b) {
		return r.searcher.Utility(b, r.perspective), nil
	}

	moves := r.engine.LegalMoves(b)
	if len(moves) == 0 {
		return r.minValue(r.mustPass(b), depth, alpha, beta)
	}

	best := minScore
	for _, move := range moves {
		value, err := r.minValue(r.mustApply(b, move), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}

		best = max(best, value)
		alpha = max(alpha, best)

		if beta <= alpha {
			break
		}
	}

	return best, nil
}

func (r *searchRun) minValue(b othello.Board, depth, alpha, beta int) (int, error) {
	if err := r.enter(); err != nil {
		return 0, err
	}

	if depth == 0 || r.engine.IsGameOver(b) {
		return r.searcher.Utility(b, r.perspective), nil
	}

	moves := r.engine.LegalMoves(b)
	if len(moves) == 0 {
		return r.maxValue(r.mustPass(b), depth, alpha, beta)
	}

	best := maxScore
	for _, move := range moves {
		value, err := r.maxValue(r.mustApply(b, move), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}

		best = min(best, value)
		beta = min(beta, best)

		if beta <= alpha {
			break
		}
	}

	return best, nil
}

// enter counts a node and checks for cancellation.
func (r *searchRun) enter() error {
	r.nodes++

	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("search cancelled after %d nodes: %w", r.nodes, err)
	}

	return nil
}

// mustApply applies a move that was generated by the engine. Failure means the engine is broken.
func (r *searchRun) mustApply(b othello.Board, move othello.Move) othello.Board {
	child, err := r.engine.ApplyMove(b, move)
	if err != nil {
		panic(fmt.Sprintf("engine generated an unplayable move: %v", err))
	}
	return child
}

// mustPass passes on a board that has no moves but is not terminal.
func (r *searchRun) mustPass(b othello.Board) othello.Board {
	passed, err := r.engine.PassTurn(b)
	if err != nil {
		panic(fmt.Sprintf("engine refused a pass: %v", err))
	}
	return passed
}
