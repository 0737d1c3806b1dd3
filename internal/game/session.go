package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lk16/flippy/versus/internal/othello"
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNotYourTurn       = errors.New("it is not the human player's turn")
	ErrGameOver          = othello.ErrGameOver
)

// Difficulty is the strength of the AI.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty name. An empty name means Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(s)); d {
	case "":
		return Medium, nil
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// Depth returns the search depth in plies.
func (d Difficulty) Depth() int {
	switch d {
	case Easy:
		return 1
	case Hard:
		return 5
	default:
		return 3
	}
}

// Status is the state of a session.
type Status string

const (
	InProgress Status = "in_progress"
	Finished   Status = "finished"
)

// Turn is a single entry in the move history.
type Turn struct {
	// Color is the side that moved or passed.
	Color othello.Cell `json:"color"`

	// Move is nil for a pass.
	Move *othello.Move `json:"move"`
}

// String returns the field notation of the move, or "--" for a pass.
func (t Turn) String() string {
	if t.Move == nil {
		return othello.PassField
	}
	return t.Move.String()
}

// Session is a single game between a human and the AI.
type Session struct {
	ID         string        `json:"id"`
	Board      othello.Board `json:"board"`
	Human      othello.Cell  `json:"human"`
	Difficulty Difficulty    `json:"difficulty"`
	Status     Status        `json:"status"`
	History    []Turn        `json:"history"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// AI returns the color played by the AI.
func (s *Session) AI() othello.Cell {
	return s.Human.Opponent()
}

// IsFinished checks if the game has ended.
func (s *Session) IsFinished() bool {
	return s.Status == Finished
}

// Transcript returns the moves in field notation, with "--" for passes.
func (s *Session) Transcript() []string {
	moves := make([]string, len(s.History))
	for i, turn := range s.History {
		moves[i] = turn.String()
	}
	return moves
}

func (s *Session) record(color othello.Cell, move *othello.Move) {
	s.History = append(s.History, Turn{Color: color, Move: move})
}

// Result summarizes the outcome of a finished session.
type Result struct {
	SessionID  string       `json:"session_id"`
	Difficulty Difficulty   `json:"difficulty"`
	Human      othello.Cell `json:"human"`
	White      int          `json:"white"`
	Black      int          `json:"black"`
	Winner     othello.Cell `json:"winner"`
	Moves      []string     `json:"moves"`
	FinishedAt time.Time    `json:"finished_at"`
}

// HumanOutcome returns "win", "loss" or "draw" from the human's point of view.
func (r Result) HumanOutcome() string {
	switch r.Winner {
	case r.Human:
		return "win"
	case othello.Empty:
		return "draw"
	default:
		return "loss"
	}
}
