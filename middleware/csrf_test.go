package middleware

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-pos/services"
)

func TestVerifyCSRFToken(t *testing.T) {
	assert.True(t, VerifyCSRFToken("secret-token", "secret-token"))
	assert.False(t, VerifyCSRFToken("secret-token", "wrong-token!"))
	assert.False(t, VerifyCSRFToken("secret-token", ""))
	assert.False(t, VerifyCSRFToken("", ""))
	assert.False(t, VerifyCSRFToken("", "anything"))
}

func newCSRFApp(t *testing.T) (*fiber.App, string, string) {
	t.Helper()
	services.InitSessionStore(services.NewMemorySessionBackend())

	rec, _, err := services.Sessions().Open(context.Background(), "", "127.0.0.1", "test-agent")
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/submit", RequireCSRF(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, rec.SessionID, rec.CSRFToken
}

func TestRequireCSRFHeader(t *testing.T) {
	app, sid, token := newCSRFApp(t)

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set("Cookie", services.SessionCookieName+"="+sid)
	req.Header.Set(services.CSRFTokenHeader, token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireCSRFFormField(t *testing.T) {
	app, sid, token := newCSRFApp(t)

	body := strings.NewReader(services.CSRFTokenField + "=" + token)
	req := httptest.NewRequest("POST", "/submit", body)
	req.Header.Set("Cookie", services.SessionCookieName+"="+sid)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireCSRFMismatch(t *testing.T) {
	app, sid, _ := newCSRFApp(t)

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set("Cookie", services.SessionCookieName+"="+sid)
	req.Header.Set(services.CSRFTokenHeader, "forged-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireCSRFMissingToken(t *testing.T) {
	app, sid, _ := newCSRFApp(t)

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set("Cookie", services.SessionCookieName+"="+sid)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireCSRFNoSession(t *testing.T) {
	app, _, token := newCSRFApp(t)

	req := httptest.NewRequest("POST", "/submit", nil)
	req.Header.Set(services.CSRFTokenHeader, token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
