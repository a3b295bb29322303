package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-pos/models"
	"inventory-pos/services"
)

func setupLoggedInSession(t *testing.T, portal, role string) string {
	t.Helper()
	services.InitSessionStore(services.NewMemorySessionBackend())

	ctx := context.Background()
	rec, _, err := services.Sessions().Open(ctx, "", "127.0.0.1", "test-agent")
	require.NoError(t, err)

	_, err = services.Sessions().CreateLogin(ctx, rec.SessionID, portal, map[string]interface{}{
		"user_id":  "u1",
		"username": "alice",
		"role":     role,
	})
	require.NoError(t, err)
	return rec.SessionID
}

func TestCheckPage(t *testing.T) {
	session := &models.BrowserSession{
		Mirror: map[string]map[string]interface{}{
			"staff": {"user_id": "u1", "role": "cashier"},
			"admin": {"username": "ghost"}, // no user_id
		},
	}

	assert.Equal(t, DecisionAllowed, CheckPage(session, models.PortalStaff).Decision)
	assert.Equal(t, DecisionUnauthorized, CheckPage(session, models.PortalAdmin).Decision)
	assert.Equal(t, DecisionUnauthorized, CheckPage(session, models.PortalSupplier).Decision)
	assert.Equal(t, DecisionUnauthorized, CheckPage(nil, models.PortalStaff).Decision)
}

func TestCheckAPI(t *testing.T) {
	session := &models.BrowserSession{
		Mirror: map[string]map[string]interface{}{
			"admin": {"user_id": "u1", "role": "cashier"},
		},
	}

	assert.Equal(t, DecisionAllowed, CheckAPI(session, models.PortalAdmin, "").Decision)
	assert.Equal(t, DecisionAllowed, CheckAPI(session, models.PortalAdmin, "cashier").Decision)
	assert.Equal(t, DecisionForbidden, CheckAPI(session, models.PortalAdmin, "manager").Decision)
	assert.Equal(t, DecisionUnauthorized, CheckAPI(session, models.PortalStaff, "manager").Decision)
}

func TestRequirePageRedirectsWhenUnauthenticated(t *testing.T) {
	services.InitSessionStore(services.NewMemorySessionBackend())

	app := fiber.New()
	app.Get("/staff", RequirePage(models.PortalStaff, "/staff/login"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/staff", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/staff/login", resp.Header.Get("Location"))
}

func TestRequirePageAllowsLoggedIn(t *testing.T) {
	sid := setupLoggedInSession(t, "staff", "cashier")

	app := fiber.New()
	app.Get("/staff", RequirePage(models.PortalStaff, "/staff/login"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/staff", nil)
	req.Header.Set("Cookie", services.SessionCookieName+"="+sid)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAPIUnauthenticated(t *testing.T) {
	services.InitSessionStore(services.NewMemorySessionBackend())

	app := fiber.New()
	app.Get("/api/admin/users", RequireAPI(models.PortalAdmin, ""), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/users", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAPIForbiddenSubRole(t *testing.T) {
	sid := setupLoggedInSession(t, "admin", "cashier")

	app := fiber.New()
	app.Post("/api/admin/users", RequireAPI(models.PortalAdmin, models.SubRoleManager), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("POST", "/api/admin/users", nil)
	req.Header.Set("Cookie", services.SessionCookieName+"="+sid)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAPIAllowsMatchingSubRole(t *testing.T) {
	sid := setupLoggedInSession(t, "admin", "manager")

	app := fiber.New()
	app.Post("/api/admin/users", RequireAPI(models.PortalAdmin, models.SubRoleManager), func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		return c.SendString(role)
	})

	req := httptest.NewRequest("POST", "/api/admin/users", nil)
	req.Header.Set("Cookie", services.SessionCookieName+"="+sid)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
