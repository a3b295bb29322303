package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"inventory-pos/models"
	"inventory-pos/services"
)

// Decision is the outcome of an access check
type Decision int

const (
	DecisionAllowed Decision = iota
	DecisionUnauthorized
	DecisionForbidden
)

// AuthResult carries the gate's decision plus the login data on success,
// so the HTTP layer can translate it without re-reading the session.
type AuthResult struct {
	Decision Decision
	Reason   string
	Data     map[string]interface{}
}

// CheckPage evaluates page access for a portal against the session's
// mirror slot: authenticated iff the slot carries a user_id.
func CheckPage(session *models.BrowserSession, portal models.Portal) AuthResult {
	if session == nil {
		return AuthResult{Decision: DecisionUnauthorized, Reason: "no session"}
	}
	mirror := session.MirrorData(string(portal))
	if mirror == nil {
		return AuthResult{Decision: DecisionUnauthorized, Reason: "not logged in"}
	}
	if _, ok := mirror["user_id"]; !ok {
		return AuthResult{Decision: DecisionUnauthorized, Reason: "not logged in"}
	}
	return AuthResult{Decision: DecisionAllowed, Data: mirror}
}

// CheckAPI evaluates API access for a portal, additionally requiring the
// login's role field to equal requiredRole when one is given.
func CheckAPI(session *models.BrowserSession, portal models.Portal, requiredRole string) AuthResult {
	result := CheckPage(session, portal)
	if result.Decision != DecisionAllowed {
		return result
	}
	if requiredRole != "" {
		role, _ := result.Data["role"].(string)
		if role != requiredRole {
			return AuthResult{Decision: DecisionForbidden, Reason: "insufficient permissions"}
		}
	}
	return result
}

// RequirePage guards server-rendered page routes: unauthenticated requests
// are redirected to the portal's login page.
func RequirePage(portal models.Portal, loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := services.Sessions().Get(c.Context(), c.Cookies(services.SessionCookieName))
		if err != nil {
			slog.Error("Failed to load session", "error", err)
			return c.Redirect(loginPath)
		}

		result := CheckPage(session, portal)
		if result.Decision != DecisionAllowed {
			return c.Redirect(loginPath)
		}

		setLoginLocals(c, portal, result.Data)
		return c.Next()
	}
}

// RequireAPI guards JSON API routes: 401 when unauthenticated, 403 when
// the login's role does not match requiredRole (pass "" to accept any
// authenticated user of the portal).
func RequireAPI(portal models.Portal, requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := services.Sessions().Get(c.Context(), c.Cookies(services.SessionCookieName))
		if err != nil {
			slog.Error("Failed to load session", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		result := CheckAPI(session, portal, requiredRole)
		switch result.Decision {
		case DecisionUnauthorized:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		case DecisionForbidden:
			slog.Info("Access denied", "portal", portal, "required_role", requiredRole)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		setLoginLocals(c, portal, result.Data)
		return c.Next()
	}
}

func setLoginLocals(c *fiber.Ctx, portal models.Portal, data map[string]interface{}) {
	c.Locals("portal", string(portal))
	if v, ok := data["user_id"].(string); ok {
		c.Locals("user_id", v)
	}
	if v, ok := data["username"].(string); ok {
		c.Locals("username", v)
	}
	if v, ok := data["email"].(string); ok {
		c.Locals("email", v)
	}
	if v, ok := data["role"].(string); ok {
		c.Locals("role", v)
	}
	if v, ok := data["supplier_id"].(string); ok {
		c.Locals("supplier_id", v)
	}
}
