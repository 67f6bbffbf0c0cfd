package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/tests"
	"github.com/stretchr/testify/require"
)

func createGame(t *testing.T, app *fiber.App, size models.BoardSize) models.GameResponse {
	t.Helper()

	resp := tests.Do(t, app, http.MethodPost, "/api/games", size, tests.TestToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var game models.GameResponse
	tests.Decode(t, resp, &game)
	return game
}

func TestCreateGame(t *testing.T) {
	cases := []struct {
		name           string
		payload        any
		token          string
		wantStatusCode int
	}{
		{
			name:           "no auth",
			payload:        models.CreateGameRequest{},
			token:          "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "wrong token",
			payload:        models.CreateGameRequest{},
			token:          "nope",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "default size",
			payload:        nil,
			token:          tests.TestToken,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "custom size",
			payload:        models.BoardSize{Width: 5, Height: 4, WinLength: 3},
			token:          tests.TestToken,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid size",
			payload:        models.BoardSize{Width: 3, Height: 3, WinLength: 4},
			token:          tests.TestToken,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "cell count overflows",
			payload:        models.BoardSize{Width: 1 << 33, Height: 1 << 31, WinLength: 4},
			token:          tests.TestToken,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := tests.NewTestApp()

			resp := tests.Do(t, app, http.MethodPost, "/api/games", tt.payload, tt.token)
			defer resp.Body.Close()

			require.Equal(t, tt.wantStatusCode, resp.StatusCode)
		})
	}
}

func TestCreateGame_BasicAuth(t *testing.T) {
	app, _ := tests.NewTestApp()

	req, err := http.NewRequest(http.MethodPost, "/api/games", nil)
	require.NoError(t, err)
	req.SetBasicAuth(tests.TestUser, tests.TestPassword)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGetGame(t *testing.T) {
	app, _ := tests.NewTestApp()
	game := createGame(t, app, models.BoardSize{})

	require.Equal(t, 7, game.Width)
	require.Equal(t, 6, game.Height)
	require.Equal(t, 4, game.WinLength)
	require.Equal(t, "x", game.CurrentPlayer)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, game.LegalColumns)

	resp := tests.Do(t, app, http.MethodGet, "/api/games/"+game.ID.String(), nil, tests.TestToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var found models.GameResponse
	tests.Decode(t, resp, &found)
	require.Equal(t, game.ID, found.ID)
	require.Len(t, found.Board, 8)

	resp = tests.Do(t, app, http.MethodGet, "/api/games/"+uuid.NewString(), nil, tests.TestToken)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = tests.Do(t, app, http.MethodGet, "/api/games/not-a-uuid", nil, tests.TestToken)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlayMove_UntilWin(t *testing.T) {
	app, _ := tests.NewTestApp()
	game := createGame(t, app, models.BoardSize{})
	path := fmt.Sprintf("/api/games/%s/moves", game.ID)

	var last models.GameResponse
	for _, column := range []int{0, 1, 0, 1, 0, 1, 0} {
		resp := tests.Do(t, app, http.MethodPost, path, models.MoveRequest{Column: column}, tests.TestToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		tests.Decode(t, resp, &last)
	}

	require.Equal(t, "player_one_wins", last.Result)
	require.Empty(t, last.LegalColumns)
	require.Len(t, last.WinningCells, 4)

	resp := tests.Do(t, app, http.MethodPost, path, models.MoveRequest{Column: 3}, tests.TestToken)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = tests.Do(t, app, http.MethodGet, "/api/games/stats", nil, tests.TestToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats []models.ResultStats
	tests.Decode(t, resp, &stats)
	require.Equal(t, []models.ResultStats{{Result: "player_one_wins", Count: 1}}, stats)
}

func TestPlayMove_Illegal(t *testing.T) {
	app, _ := tests.NewTestApp()
	game := createGame(t, app, models.BoardSize{Width: 2, Height: 2, WinLength: 2})
	path := fmt.Sprintf("/api/games/%s/moves", game.ID)

	for _, column := range []int{0, 0} {
		resp := tests.Do(t, app, http.MethodPost, path, models.MoveRequest{Column: column}, tests.TestToken)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	for _, column := range []int{0, -1, 2} {
		resp := tests.Do(t, app, http.MethodPost, path, models.MoveRequest{Column: column}, tests.TestToken)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		tests.Decode(t, resp, &body)
		require.Contains(t, body["error"], "illegal move")
	}
}

func TestAgentMove(t *testing.T) {
	app, _ := tests.NewTestApp()
	game := createGame(t, app, models.BoardSize{})
	path := fmt.Sprintf("/api/games/%s/agent-move", game.ID)

	resp := tests.Do(t, app, http.MethodPost, path, models.AgentMoveRequest{BudgetMs: 300}, tests.TestToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.AgentMoveResponse
	tests.Decode(t, resp, &got)
	require.Len(t, got.Game.Moves, 1)
	require.Equal(t, got.Analysis.Column, got.Game.Moves[0])
	require.Equal(t, "o", got.Game.CurrentPlayer)

	// Default budget when no body is sent.
	resp = tests.Do(t, app, http.MethodPost, path, nil, tests.TestToken)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = tests.Do(t, app, http.MethodPost, path, models.AgentMoveRequest{BudgetMs: 60_000}, tests.TestToken)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
