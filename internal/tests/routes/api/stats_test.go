package api

import (
	"net/http"
	"testing"

	"github.com/lk16/flippy/versus/internal/game"
	"github.com/lk16/flippy/versus/internal/models"
	"github.com/lk16/flippy/versus/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestStatsEmpty(t *testing.T) {
	app, _ := tests.NewTestApp(t)

	resp := tests.Do(t, app, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats models.StatsResponse
	tests.Decode(t, resp, &stats)
	require.Equal(t, 0, stats.Games)
	require.Empty(t, stats.Difficulties)
}

// TestStatsAfterFinishedGame plays the first legal move until the game ends.
func TestStatsAfterFinishedGame(t *testing.T) {
	app, _ := tests.NewTestApp(t)
	current := createEasyGame(t, app)

	for current.Status == game.InProgress {
		require.NotEmpty(t, current.LegalMoves)

		resp := tests.Do(t, app, http.MethodPost, "/api/games/"+current.ID+"/moves", models.MoveRequest{Field: current.LegalMoves[0]})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		tests.Decode(t, resp, &current)
	}

	require.Equal(t, game.Finished, current.Status)
	require.NotNil(t, current.Winner)
	require.Empty(t, current.LegalMoves)

	resp := tests.Do(t, app, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats models.StatsResponse
	tests.Decode(t, resp, &stats)
	require.Equal(t, 1, stats.Games)
	require.Len(t, stats.Difficulties, 1)

	easy := stats.Difficulties[0]
	require.Equal(t, "easy", easy.Difficulty)
	require.Equal(t, 1, easy.Wins+easy.Losses+easy.Draws)

	resp = tests.Do(t, app, http.MethodPost, "/api/games/"+current.ID+"/moves", models.MoveRequest{Field: "a1"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}
