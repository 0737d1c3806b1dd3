package othello

import (
	"fmt"
	"math/rand"
)

const maxRandomRestarts = 1000

// Engine applies a set of rules to boards. It holds no game state,
// so one Engine can serve any number of games and searches.
type Engine struct {
	rules Rules
}

// NewEngine creates a new engine for the given rules.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the rules of the engine.
func (e *Engine) Rules() Rules {
	return e.rules
}

// LegalMoves returns all legal moves for the side to move in row-major order.
func (e *Engine) LegalMoves(b Board) []Move {
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			m := Move{Row: row, Col: col}
			if e.rules.IsLegal(b, m) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// HasLegalMoves checks if the side to move has any legal move.
func (e *Engine) HasLegalMoves(b Board) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if e.rules.IsLegal(b, Move{Row: row, Col: col}) {
				return true
			}
		}
	}
	return false
}

// IsGameOver checks if neither side has a legal move.
func (e *Engine) IsGameOver(b Board) bool {
	return !e.HasLegalMoves(b) && !e.HasLegalMoves(b.withTurn(b.turn.Opponent()))
}

// ApplyMove plays m for the side to move and returns the resulting board.
// The input board is never modified.
func (e *Engine) ApplyMove(b Board, m Move) (Board, error) {
	if !m.Valid() {
		return b, &IllegalMoveError{Move: m, Reason: ErrOutOfRange}
	}

	if e.IsGameOver(b) {
		return b, &IllegalMoveError{Move: m, Reason: ErrGameOver}
	}

	if b.At(m) != Empty {
		return b, &IllegalMoveError{Move: m, Reason: ErrOccupied}
	}

	flips := e.rules.FlipSet(b, m)
	if len(flips) == 0 {
		return b, &IllegalMoveError{Move: m, Reason: ErrNoFlips}
	}

	next := b
	next.cells[m.Row][m.Col] = b.turn
	for _, f := range flips {
		next.cells[f.Row][f.Col] = b.turn
	}
	next.turn = b.turn.Opponent()

	return next, nil
}

// PassTurn hands the turn to the opponent. This is only allowed when the side to move
// has no legal moves and the game is not over.
func (e *Engine) PassTurn(b Board) (Board, error) {
	if e.HasLegalMoves(b) {
		return b, ErrMustMove
	}

	if e.IsGameOver(b) {
		return b, ErrGameOver
	}

	return b.withTurn(b.turn.Opponent()), nil
}

// CountPieces returns the number of white and black discs.
func (e *Engine) CountPieces(b Board) (white, black int) {
	return b.count()
}

// Winner returns the side with the most discs, or Empty on a draw.
func (e *Engine) Winner(b Board) Cell {
	white, black := b.count()
	switch {
	case white > black:
		return White
	case black > white:
		return Black
	default:
		return Empty
	}
}

// RandomBoard plays random legal moves from the start until the board has the given number of discs.
// Passes are played when needed. Playouts that end early are restarted.
func (e *Engine) RandomBoard(discs int, rng *rand.Rand) (Board, error) {
	if discs < 4 || discs > Size*Size {
		return Board{}, fmt.Errorf("invalid number of discs: %d", discs)
	}

	b := NewBoardStart()
	restarts := 0

	for b.CountDiscs() < discs {
		moves := e.LegalMoves(b)
		if len(moves) > 0 {
			next, err := e.ApplyMove(b, moves[rng.Intn(len(moves))])
			if err != nil {
				return Board{}, err
			}
			b = next
			continue
		}

		passed, err := e.PassTurn(b)
		if err != nil {
			// Game ended before reaching the disc count.
			restarts++
			if restarts > maxRandomRestarts {
				return Board{}, fmt.Errorf("no playout reached %d discs", discs)
			}
			b = NewBoardStart()
			continue
		}
		b = passed
	}

	return b, nil
}
