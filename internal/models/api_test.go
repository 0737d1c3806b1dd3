package models

import (
	"encoding/json"
	"testing"

	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/othello"
	"github.com/stretchr/testify/require"
)

func TestNewGameRequest_Parse(t *testing.T) {
	tests := []struct {
		name           string
		request        NewGameRequest
		wantDifficulty game.Difficulty
		wantColor      othello.Cell
		wantErr        bool
	}{
		{
			name:           "defaults",
			request:        NewGameRequest{},
			wantDifficulty: game.Medium,
			wantColor:      othello.Black,
		},
		{
			name:           "hard as white",
			request:        NewGameRequest{Difficulty: "hard", Color: "white"},
			wantDifficulty: game.Hard,
			wantColor:      othello.White,
		},
		{
			name:    "unknown difficulty",
			request: NewGameRequest{Difficulty: "nightmare"},
			wantErr: true,
		},
		{
			name:    "empty is no color",
			request: NewGameRequest{Color: "empty"},
			wantErr: true,
		},
		{
			name:    "unknown color",
			request: NewGameRequest{Color: "green"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			difficulty, color, err := tt.request.Parse()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantDifficulty, difficulty)
			require.Equal(t, tt.wantColor, color)
		})
	}
}

func TestMoveRequest_Move(t *testing.T) {
	var req MoveRequest
	require.NoError(t, json.Unmarshal([]byte(`{"field":"d3"}`), &req))

	move, err := req.Move()
	require.NoError(t, err)
	require.Equal(t, othello.Move{Row: 2, Col: 3}, move)

	req = MoveRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"row":0,"col":7}`), &req))

	move, err = req.Move()
	require.NoError(t, err)
	require.Equal(t, othello.Move{Row: 0, Col: 7}, move)

	req = MoveRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"row":4}`), &req))
	_, err = req.Move()
	require.ErrorContains(t, err, "either field or both row and col are required")

	req = MoveRequest{Field: "z9"}
	_, err = req.Move()
	require.Error(t, err)
}

func TestNewGameResponse(t *testing.T) {
	engine := othello.NewEngine(othello.OrthogonalRules)
	s := &game.Session{
		ID:         "game-1",
		Board:      othello.NewBoardStart(),
		Human:      othello.Black,
		Difficulty: game.Easy,
		Status:     game.InProgress,
		History:    []game.Turn{},
	}

	resp := NewGameResponse(s, engine)
	require.Equal(t, "game-1", resp.ID)
	require.Equal(t, []string{"d3", "c4", "f5", "e6"}, resp.LegalMoves)
	require.Equal(t, 2, resp.White)
	require.Equal(t, 2, resp.Black)
	require.Nil(t, resp.Winner)
	require.Equal(t, othello.NewBoardStart().Grid(), resp.Grid)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "black", decoded["turn"])
	require.Equal(t, "in_progress", decoded["status"])
	require.Equal(t, "00000008100000000000001008000000-b", decoded["board"])
	require.NotContains(t, decoded, "winner")

	s.Status = game.Finished
	resp = NewGameResponse(s, engine)
	require.Empty(t, resp.LegalMoves)
	require.NotNil(t, resp.Winner)
	require.Equal(t, othello.Empty, *resp.Winner)
}

func TestNewHintResponse(t *testing.T) {
	data, err := json.Marshal(NewHintResponse(othello.Move{Row: 2, Col: 3}, true))
	require.NoError(t, err)
	require.JSONEq(t, `{"move":"d3","row":2,"col":3}`, string(data))

	data, err = json.Marshal(NewHintResponse(othello.Move{}, false))
	require.NoError(t, err)
	require.JSONEq(t, `{"move":null}`, string(data))
}

func TestNewStatsResponse(t *testing.T) {
	resp := NewStatsResponse(nil)
	require.Equal(t, 0, resp.Games)
	require.NotNil(t, resp.Difficulties)

	resp = NewStatsResponse([]DifficultyStats{
		{Difficulty: "easy", Games: 3, Wins: 2, Losses: 1},
		{Difficulty: "hard", Games: 2, Losses: 1, Draws: 1},
	})
	require.Equal(t, 5, resp.Games)
}
