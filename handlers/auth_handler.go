package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"inventory-pos/models"
	"inventory-pos/services"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	CSRFToken string       `json:"csrf_token"`
	User      *models.User `json:"user"`
}

// Login authenticates a user against one portal and creates a login
// instance in the browser session. The per-tab token is returned in the
// body; the browser session ID travels in the cookie.
func Login(c *fiber.Ctx) error {
	portal := c.Params("portal")
	if !models.IsValidPortal(portal) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid portal",
		})
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username and password are required",
		})
	}

	user, err := services.GetUserByUsername(c.Context(), req.Username, models.Portal(portal))
	if err != nil {
		slog.Info("Login failed", "username", req.Username, "portal", portal)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Account is disabled",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.Info("Invalid password attempt", "username", req.Username, "portal", portal)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	session, created, err := services.Sessions().Open(
		c.Context(),
		c.Cookies(services.SessionCookieName),
		c.IP(),
		c.Get("User-Agent"),
	)
	if err != nil {
		slog.Error("Failed to open session", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	token, err := services.Sessions().CreateLogin(c.Context(), session.SessionID, portal, user.SessionData())
	if err != nil {
		slog.Error("Failed to create login", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	if created {
		c.Cookie(&fiber.Cookie{
			Name:     services.SessionCookieName,
			Value:    session.SessionID,
			Expires:  session.ExpiresAt,
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})
	}

	if err := services.UpdateUserLastLogin(c.Context(), user.ID.Hex()); err != nil {
		slog.Error("Failed to update last login", "error", err)
	}

	slog.Info("User logged in", "user_id", user.ID.Hex(), "username", user.Username, "portal", portal)

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Message:   "Login successful",
		Token:     token,
		CSRFToken: session.CSRFToken,
		User:      user,
	})
}

// Logout clears login instances for the portal. With an X-Login-Token
// header only that tab's login goes away; without it every tab logged in
// to the portal is logged out.
func Logout(c *fiber.Ctx) error {
	portal := c.Params("portal")
	if !models.IsValidPortal(portal) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid portal",
		})
	}

	sessionID := c.Cookies(services.SessionCookieName)
	if sessionID == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Logged out successfully",
		})
	}

	token := c.Get(services.LoginTokenHeader)
	userID := c.Query("user_id")

	if err := services.Sessions().ClearLogin(c.Context(), sessionID, portal, userID, token); err != nil {
		slog.Error("Failed to clear login", "error", err)
	}

	slog.Info("User logged out", "portal", portal, "scoped", token != "")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the full user record behind the caller's login
func GetCurrentUser(c *fiber.Ctx) error {
	portal := c.Params("portal")
	if !models.IsValidPortal(portal) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid portal",
		})
	}

	data, err := services.Sessions().GetLogin(
		c.Context(),
		c.Cookies(services.SessionCookieName),
		portal,
		c.Get(services.LoginTokenHeader),
	)
	if err != nil {
		slog.Error("Failed to get login", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}
	if data == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	userID, _ := data["user_id"].(string)
	user, err := services.GetUserByID(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get user", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get user information",
		})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// CheckSession reports whether the caller holds a login for the portal
func CheckSession(c *fiber.Ctx) error {
	portal := c.Params("portal")
	if !models.IsValidPortal(portal) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid portal",
		})
	}

	data, err := services.Sessions().GetLogin(
		c.Context(),
		c.Cookies(services.SessionCookieName),
		portal,
		c.Get(services.LoginTokenHeader),
	)
	if err != nil || data == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"authenticated": false,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"authenticated": true,
		"user_id":       data["user_id"],
		"username":      data["username"],
		"email":         data["email"],
		"role":          data["role"],
	})
}
