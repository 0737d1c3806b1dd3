package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/othello"
)

// NewGameRequest represents the payload to start a game.
type NewGameRequest struct {
	Difficulty string `json:"difficulty"`
	Color      string `json:"color"`
}

// Parse validates the request. Empty fields fall back to medium difficulty and black.
func (r *NewGameRequest) Parse() (game.Difficulty, othello.Cell, error) {
	difficulty, err := game.ParseDifficulty(r.Difficulty)
	if err != nil {
		return "", othello.Empty, err
	}

	if r.Color == "" {
		return difficulty, othello.Black, nil
	}

	color, err := othello.ParseCell(r.Color)
	if err != nil || !color.IsPlayer() {
		return "", othello.Empty, fmt.Errorf("invalid color: %q", r.Color)
	}

	return difficulty, color, nil
}

// MoveRequest represents a move of the human, either in field notation or as a row and column.
type MoveRequest struct {
	Field string `json:"field,omitempty"`
	Row   *int   `json:"row,omitempty"`
	Col   *int   `json:"col,omitempty"`
}

// Move converts the request to a move. Range checks are left to the engine.
func (r *MoveRequest) Move() (othello.Move, error) {
	if r.Field != "" {
		return othello.ParseMove(r.Field)
	}

	if r.Row == nil || r.Col == nil {
		return othello.Move{}, errors.New("either field or both row and col are required")
	}

	return othello.Move{Row: *r.Row, Col: *r.Col}, nil
}

// GameResponse represents the state of a game as seen by the human.
type GameResponse struct {
	ID         string          `json:"id"`
	Board      othello.Board   `json:"board"`
	Grid       []string        `json:"grid"`
	Turn       othello.Cell    `json:"turn"`
	Human      othello.Cell    `json:"human"`
	Difficulty game.Difficulty `json:"difficulty"`
	Status     game.Status     `json:"status"`
	LegalMoves []string        `json:"legal_moves"`
	White      int             `json:"white"`
	Black      int             `json:"black"`
	Winner     *othello.Cell   `json:"winner,omitempty"`
	History    []string        `json:"history"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewGameResponse builds the response for a session.
func NewGameResponse(s *game.Session, engine *othello.Engine) GameResponse {
	white, black := engine.CountPieces(s.Board)

	legalMoves := make([]string, 0)
	if !s.IsFinished() && s.Board.Turn() == s.Human {
		for _, m := range engine.LegalMoves(s.Board) {
			legalMoves = append(legalMoves, m.String())
		}
	}

	resp := GameResponse{
		ID:         s.ID,
		Board:      s.Board,
		Grid:       s.Board.Grid(),
		Turn:       s.Board.Turn(),
		Human:      s.Human,
		Difficulty: s.Difficulty,
		Status:     s.Status,
		LegalMoves: legalMoves,
		White:      white,
		Black:      black,
		History:    s.Transcript(),
		UpdatedAt:  s.UpdatedAt,
	}

	if s.IsFinished() {
		winner := engine.Winner(s.Board)
		resp.Winner = &winner
	}

	return resp
}

// HintResponse contains a suggested move, or a nil move when the human cannot move.
type HintResponse struct {
	Move *string `json:"move"`
	Row  *int    `json:"row,omitempty"`
	Col  *int    `json:"col,omitempty"`
}

// NewHintResponse builds a hint response.
func NewHintResponse(move othello.Move, found bool) HintResponse {
	if !found {
		return HintResponse{}
	}

	field := move.String()
	return HintResponse{
		Move: &field,
		Row:  &move.Row,
		Col:  &move.Col,
	}
}

// DifficultyStats holds the results of finished games for one difficulty.
type DifficultyStats struct {
	Difficulty string `json:"difficulty" db:"difficulty"`
	Games      int    `json:"games"      db:"games"`
	Wins       int    `json:"wins"       db:"wins"`
	Losses     int    `json:"losses"     db:"losses"`
	Draws      int    `json:"draws"      db:"draws"`
}

// StatsResponse represents the results of all finished games.
type StatsResponse struct {
	Games        int               `json:"games"`
	Difficulties []DifficultyStats `json:"difficulties"`
}

// NewStatsResponse sums up per-difficulty stats.
func NewStatsResponse(stats []DifficultyStats) StatsResponse {
	resp := StatsResponse{Difficulties: stats}
	if resp.Difficulties == nil {
		resp.Difficulties = make([]DifficultyStats, 0)
	}

	for _, s := range stats {
		resp.Games += s.Games
	}

	return resp
}

// VersionResponse contains the version of the running server.
type VersionResponse struct {
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}
