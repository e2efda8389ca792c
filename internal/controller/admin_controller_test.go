package controller

import (
	"net/http"
	"testing"
	"time"

	"ai-tutor-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogReader struct {
	nopLogger
	entries []logger.LogEntry
}

func (s *stubLogReader) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.entries, nil
}

func newAdminApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	t.Setenv("ADMIN_JWT_SECRET", "test-admin-secret")

	app := fiber.New()
	ctrl := NewAdminController(&stubLogReader{})
	ctrl.RegisterRoutes(app.Group("/api"))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-admin-secret"))
	require.NoError(t, err)
	return app, signed
}

func getLogs(t *testing.T, app *fiber.App, query, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/api/admin/v1/logs"+query, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestGetLogsRequiresToken(t *testing.T) {
	app, _ := newAdminApp(t)
	resp := getLogs(t, app, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetLogsMalformedQueryIsBadRequest(t *testing.T) {
	app, token := newAdminApp(t)
	resp := getLogs(t, app, "?limit=abc", token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetLogsSucceeds(t *testing.T) {
	app, token := newAdminApp(t)
	resp := getLogs(t, app, "?level=INFO&limit=10", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
