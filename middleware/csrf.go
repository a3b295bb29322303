package middleware

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"inventory-pos/services"
)

// VerifyCSRFToken compares a supplied token against the session's secret
// in constant time. An empty secret never matches.
func VerifyCSRFToken(secret, supplied string) bool {
	if secret == "" || len(secret) != len(supplied) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(supplied)) == 1
}

// RequireCSRF rejects state-changing requests whose CSRF token (form field
// or header) does not match the session's secret.
func RequireCSRF() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := services.Sessions().Get(c.Context(), c.Cookies(services.SessionCookieName))
		if err != nil {
			slog.Error("Failed to load session", "error", err)
			return c.SendStatus(fiber.StatusForbidden)
		}
		if session == nil {
			return c.SendStatus(fiber.StatusForbidden)
		}

		supplied := c.Get(services.CSRFTokenHeader)
		if supplied == "" {
			supplied = c.FormValue(services.CSRFTokenField)
		}

		if !VerifyCSRFToken(session.CSRFToken, supplied) {
			slog.Info("CSRF token mismatch", "path", c.Path())
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.Next()
	}
}
