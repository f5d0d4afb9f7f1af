// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	netHTTP "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiddlewareApp(t *testing.T, level string) (*fiber.App, *safeBuffer) {
	t.Helper()

	buffer := new(safeBuffer)
	registry := NewRegistry(filepath.Join(t.TempDir(), DefaultRoot), buffer)
	t.Cleanup(func() { assert.NoError(t, registry.Close()) })
	log, err := registry.CreateLogger("Server", WithLevel(level), WithSinks(NewConsoleSink(buffer)), WithColour(false))
	require.NoError(t, err)

	app := fiber.New(fiber.Config{})
	require.NotNil(t, app)

	middleware := RequestMiddlewareLogger(log, []string{"/-/"})
	require.NotNil(t, middleware)

	app.Use(middleware)
	app.Get("/foo", func(c *fiber.Ctx) error {
		FromContext(c.UserContext()).Info("serving %s", c.Path())
		return c.SendString("bar")
	})
	app.Get("/-/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(netHTTP.StatusOK)
	})
	return app, buffer
}

func TestRequestMiddlewareLogger(t *testing.T) {
	t.Parallel()

	app, buffer := newMiddlewareApp(t, "DEBUG")

	req := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/foo", nil)
	req.Header.Set("User-Agent", "UnitTestAgent/1.0")
	req.Header.Set(requestIDHeaderName, "request-1")
	req.RemoteAddr = "127.0.0.1:12345"

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "request-1", resp.Header.Get(requestIDHeaderName))

	lines := buffer.lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "[DEBUG] "+IncomingRequestMessage+" GET /foo (request request-1, host example.com")
	assert.Contains(t, lines[0], `user agent "UnitTestAgent/1.0"`)
	assert.True(t, strings.HasSuffix(lines[1], "[INFO] serving /foo (request request-1)"), "handler logs carry the request id")
	assert.Contains(t, lines[2], "[INFO] "+RequestCompletedMessage+" GET /foo 200 3B ")
	assert.True(t, strings.HasSuffix(lines[2], "(request request-1)"))
}

func TestRequestMiddlewareLoggerGeneratesRequestID(t *testing.T) {
	t.Parallel()

	app, buffer := newMiddlewareApp(t, "INFO")

	resp, err := app.Test(httptest.NewRequest(netHTTP.MethodGet, "/foo", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	requestID := resp.Header.Get(requestIDHeaderName)
	assert.Len(t, requestID, 36)

	lines := buffer.lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "serving /foo (request "+requestID+")"))
	assert.True(t, strings.HasSuffix(lines[1], "(request "+requestID+")"))
}

func TestRequestMiddlewareLoggerExcludedPrefix(t *testing.T) {
	t.Parallel()

	app, buffer := newMiddlewareApp(t, "DEBUG")

	resp, err := app.Test(httptest.NewRequest(netHTTP.MethodGet, "/-/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, netHTTP.StatusOK, resp.StatusCode)
	assert.Empty(t, buffer.lines())
}

func TestRequestMiddlewareLoggerFiberError(t *testing.T) {
	t.Parallel()

	app, buffer := newMiddlewareApp(t, "INFO")

	resp, err := app.Test(httptest.NewRequest(netHTTP.MethodGet, "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, netHTTP.StatusNotFound, resp.StatusCode)
	lines := buffer.lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], RequestCompletedMessage+" GET /missing 404 ")
}
