package api_test

import (
	"net/http"
	"testing"

	"github.com/lk16/dropfour/internal/models"
	"github.com/lk16/dropfour/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	cases := []struct {
		name           string
		payload        any
		wantStatusCode int
		wantColumn     int
		wantForced     string
	}{
		{
			name:           "immediate win",
			payload:        models.AnalyzeRequest{Moves: []int{0, 0, 1, 1, 2, 2}, BudgetMs: 500},
			wantStatusCode: http.StatusOK,
			wantColumn:     3,
			wantForced:     models.ForcedWin,
		},
		{
			name: "block",
			payload: models.AnalyzeRequest{
				BoardSize: models.BoardSize{Width: 7, Height: 6, WinLength: 4},
				Moves:     []int{0, 6, 1, 6, 2},
			},
			wantStatusCode: http.StatusOK,
			wantColumn:     3,
		},
		{
			name:           "finished game",
			payload:        models.AnalyzeRequest{Moves: []int{0, 1, 0, 1, 0, 1, 0}},
			wantStatusCode: http.StatusOK,
			wantColumn:     -1,
		},
		{
			name:           "illegal moves",
			payload:        models.AnalyzeRequest{Moves: []int{7}},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "negative budget",
			payload:        models.AnalyzeRequest{BudgetMs: -5},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "no body",
			payload:        nil,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := tests.NewTestApp()

			resp := tests.Do(t, app, http.MethodPost, "/api/analyze", tt.payload, tests.TestToken)
			require.Equal(t, tt.wantStatusCode, resp.StatusCode)

			if tt.wantStatusCode != http.StatusOK {
				resp.Body.Close()
				return
			}

			var analysis models.Analysis
			tests.Decode(t, resp, &analysis)
			require.Equal(t, tt.wantColumn, analysis.Column)
			require.Equal(t, tt.wantForced, analysis.Forced)
		})
	}
}

func TestAnalyze_CachedPerPosition(t *testing.T) {
	app, services := tests.NewTestApp()
	payload := models.AnalyzeRequest{Moves: []int{0, 0, 1, 1, 2, 2}, BudgetMs: 500}

	resp := tests.Do(t, app, http.MethodPost, "/api/analyze", payload, tests.TestToken)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, services.Analyses.Len())

	resp = tests.Do(t, app, http.MethodPost, "/api/analyze", payload, tests.TestToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var analysis models.Analysis
	tests.Decode(t, resp, &analysis)
	require.True(t, analysis.Cached)
	require.Equal(t, 3, analysis.Column)
}
