// Package tests contains helpers for the route tests.
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
	"github.com/lk16/flippy/versus/internal"
	"github.com/lk16/flippy/versus/internal/config"
	"github.com/lk16/flippy/versus/internal/othello"
	"github.com/lk16/flippy/versus/internal/repository"
	"github.com/stretchr/testify/require"
)

const (
	TestToken         = "test-token"
	TestBasicAuthUser = "test-user"
	TestBasicAuthPass = "test-pass"
)

// NewTestConfig returns a config that does not depend on the environment.
func NewTestConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "3000",
		BasicAuthUsername: TestBasicAuthUser,
		BasicAuthPassword: TestBasicAuthPass,
		Token:             TestToken,
		SessionTTL:        time.Hour,
		SearchTimeout:     time.Minute,
		Rules:             othello.OrthogonalRules,
	}
}

// NewTestApp builds an app with in-memory repositories.
func NewTestApp(t *testing.T) (*fiber.App, *repository.Repositories) {
	t.Helper()

	repos := repository.NewMemory(time.Hour)
	return internal.BuildApp(NewTestConfig(), repos), repos
}

// Do sends a request with the test token. A nil body sends no body.
func Do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		reader = &buf
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("x-token", TestToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

// Decode decodes a JSON response body.
func Decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
