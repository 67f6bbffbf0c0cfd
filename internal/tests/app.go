package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/dropfour/internal"
	"github.com/lk16/dropfour/internal/config"
	"github.com/lk16/dropfour/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	TestToken    = "test-token"
	TestUser     = "test-user"
	TestPassword = "test-password"

	// testTimeout is passed to app.Test, searches take up to their budget.
	testTimeout = 10 * time.Second
)

// NewTestApp builds the app on top of in-memory stores.
func NewTestApp() (*fiber.App, *services.Services) {
	cfg := &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "0",
		BasicAuthUsername: TestUser,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
		Agent: config.AgentConfig{
			MaxDepth:  3,
			Threshold: config.DefaultAgentThreshold,
			Budget:    time.Second,
		},
	}

	services := services.NewMemoryServices()
	return internal.BuildApp(cfg, services), services
}

// Do sends a request to app. A non-nil payload is sent as JSON, an empty token sends no x-token header.
func Do(t *testing.T, app *fiber.App, method, path string, payload any, token string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-token", token)
	}

	resp, err := app.Test(req, int(testTimeout.Milliseconds()))
	require.NoError(t, err)

	return resp
}

// Decode reads a JSON response body into v.
func Decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
