package othello

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrOutOfRange  = errors.New("coordinate out of range")
	ErrOccupied    = errors.New("square is occupied")
	ErrNoFlips     = errors.New("move flips no discs")
	ErrGameOver    = errors.New("game is over")
	ErrMustMove    = errors.New("cannot pass while a legal move exists")
)

// IllegalMoveError is returned by Engine.ApplyMove when a move cannot be played.
// It matches both ErrIllegalMove and its Reason with errors.Is.
type IllegalMoveError struct {
	Move   Move
	Reason error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %v", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() []error {
	return []error{ErrIllegalMove, e.Reason}
}
