package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/models"
	"github.com/lk16/flippy/versus/internal/othello"
	"github.com/lk16/flippy/versus/internal/repository"
	"github.com/lk16/flippy/versus/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestCreateGame(t *testing.T) {
	app, _ := tests.NewTestApp(t)

	cases := []struct {
		name           string
		body           any
		wantStatusCode int
		wantHuman      othello.Cell
		wantDifficulty game.Difficulty
		wantHistory    int
	}{
		{
			name:           "empty body",
			body:           nil,
			wantStatusCode: http.StatusCreated,
			wantHuman:      othello.Black,
			wantDifficulty: game.Medium,
		},
		{
			name:           "easy as black",
			body:           models.NewGameRequest{Difficulty: "easy", Color: "black"},
			wantStatusCode: http.StatusCreated,
			wantHuman:      othello.Black,
			wantDifficulty: game.Easy,
		},
		{
			name:           "easy as white",
			body:           models.NewGameRequest{Difficulty: "easy", Color: "white"},
			wantStatusCode: http.StatusCreated,
			wantHuman:      othello.White,
			wantDifficulty: game.Easy,
			wantHistory:    1,
		},
		{
			name:           "unknown difficulty",
			body:           models.NewGameRequest{Difficulty: "impossible"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid color",
			body:           models.NewGameRequest{Color: "red"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid payload",
			body:           "not an object",
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp := tests.Do(t, app, http.MethodPost, "/api/games", tt.body)
			require.Equal(t, tt.wantStatusCode, resp.StatusCode)

			if tt.wantStatusCode != http.StatusCreated {
				return
			}

			var created models.GameResponse
			tests.Decode(t, resp, &created)

			_, err := uuid.Parse(created.ID)
			require.NoError(t, err)
			require.Equal(t, tt.wantHuman, created.Human)
			require.Equal(t, tt.wantDifficulty, created.Difficulty)
			require.Equal(t, game.InProgress, created.Status)
			require.Equal(t, tt.wantHuman, created.Turn)
			require.Len(t, created.History, tt.wantHistory)
			require.NotEmpty(t, created.LegalMoves)
		})
	}
}

func TestGamesNoAuth(t *testing.T) {
	app, _ := tests.NewTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/games", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func createEasyGame(t *testing.T, app *fiber.App) models.GameResponse {
	t.Helper()

	resp := tests.Do(t, app, http.MethodPost, "/api/games", models.NewGameRequest{Difficulty: "easy"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.GameResponse
	tests.Decode(t, resp, &created)
	return created
}

func TestGetGame(t *testing.T) {
	app, _ := tests.NewTestApp(t)
	created := createEasyGame(t, app)

	resp := tests.Do(t, app, http.MethodGet, "/api/games/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loaded models.GameResponse
	tests.Decode(t, resp, &loaded)
	require.Equal(t, created.ID, loaded.ID)
	require.Equal(t, created.Board.String(), loaded.Board.String())
	require.Equal(t, []string{"d3", "c4", "f5", "e6"}, loaded.LegalMoves)

	resp = tests.Do(t, app, http.MethodGet, "/api/games/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = tests.Do(t, app, http.MethodGet, "/api/games/not-a-uuid", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayMove(t *testing.T) {
	app, _ := tests.NewTestApp(t)
	created := createEasyGame(t, app)
	path := "/api/games/" + created.ID + "/moves"

	cases := []struct {
		name           string
		body           any
		wantStatusCode int
	}{
		{"invalid payload", "d3", http.StatusBadRequest},
		{"missing move", map[string]any{"row": 2}, http.StatusBadRequest},
		{"invalid field", models.MoveRequest{Field: "k9"}, http.StatusBadRequest},
		{"out of range", map[string]any{"row": 8, "col": 0}, http.StatusUnprocessableEntity},
		{"occupied", models.MoveRequest{Field: "d4"}, http.StatusUnprocessableEntity},
		{"no flips", models.MoveRequest{Field: "a1"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp := tests.Do(t, app, http.MethodPost, path, tt.body)
			require.Equal(t, tt.wantStatusCode, resp.StatusCode)
		})
	}

	resp := tests.Do(t, app, http.MethodPost, path, map[string]any{"row": 2, "col": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var played models.GameResponse
	tests.Decode(t, resp, &played)
	require.Equal(t, "d3", played.History[0])
	require.Len(t, played.History, 2)
	require.Equal(t, othello.Black, played.Turn)
	require.NotEmpty(t, played.LegalMoves)

	resp = tests.Do(t, app, http.MethodPost, "/api/games/"+uuid.NewString()+"/moves", models.MoveRequest{Field: "d3"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func saveSession(t *testing.T, repos *repository.Repositories, mutate func(s *game.Session)) string {
	t.Helper()

	engine := othello.NewEngine(othello.OrthogonalRules)
	board, err := engine.ApplyMove(othello.NewBoardStart(), othello.Move{Row: 2, Col: 3})
	require.NoError(t, err)

	s := &game.Session{
		ID:         uuid.NewString(),
		Board:      board,
		Human:      othello.Black,
		Difficulty: game.Easy,
		Status:     game.InProgress,
		History:    []game.Turn{},
	}
	mutate(s)

	require.NoError(t, repos.Games.Save(context.Background(), s))
	return s.ID
}

func TestPlayMoveConflict(t *testing.T) {
	app, repos := tests.NewTestApp(t)

	// White is to move, but the human plays black.
	notYourTurn := saveSession(t, repos, func(*game.Session) {})

	finished := saveSession(t, repos, func(s *game.Session) {
		s.Status = game.Finished
	})

	for _, id := range []string{notYourTurn, finished} {
		resp := tests.Do(t, app, http.MethodPost, "/api/games/"+id+"/moves", models.MoveRequest{Field: "e3"})
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		resp = tests.Do(t, app, http.MethodGet, "/api/games/"+id+"/hint", nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	}
}

func TestGetHint(t *testing.T) {
	app, _ := tests.NewTestApp(t)
	created := createEasyGame(t, app)
	path := "/api/games/" + created.ID + "/hint"

	for _, query := range []string{"", "?depth=1", "?depth=4"} {
		resp := tests.Do(t, app, http.MethodGet, path+query, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var hint models.HintResponse
		tests.Decode(t, resp, &hint)
		require.NotNil(t, hint.Move)
		require.Contains(t, created.LegalMoves, *hint.Move)
	}

	for _, query := range []string{"?depth=0", "?depth=8", "?depth=deep"} {
		resp := tests.Do(t, app, http.MethodGet, path+query, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	resp := tests.Do(t, app, http.MethodGet, "/api/games/"+uuid.NewString()+"/hint", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteGame(t *testing.T) {
	app, _ := tests.NewTestApp(t)
	created := createEasyGame(t, app)

	resp := tests.Do(t, app, http.MethodDelete, "/api/games/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = tests.Do(t, app, http.MethodDelete, "/api/games/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = tests.Do(t, app, http.MethodGet, "/api/games/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
