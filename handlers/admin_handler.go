package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"inventory-pos/models"
	"inventory-pos/services"
)

// CreateUser handles the creation of a new user (admin managers only,
// enforced by route middleware)
func CreateUser(c *fiber.Ctx) error {
	var req struct {
		Username   string `json:"username" validate:"required"`
		Email      string `json:"email" validate:"required,email"`
		Password   string `json:"password" validate:"required"`
		FullName   string `json:"full_name"`
		Portal     string `json:"portal" validate:"required"`
		Role       string `json:"role"`
		SupplierID string `json:"supplier_id"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	if !models.IsValidPortal(req.Portal) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid portal",
			"valid_portals": []string{
				string(models.PortalAdmin),
				string(models.PortalStaff),
				string(models.PortalSupplier),
			},
		})
	}

	creator, _ := c.Locals("user_id").(string)
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Portal:       models.Portal(req.Portal),
		Role:         req.Role,
		SupplierID:   req.SupplierID,
		PasswordHash: req.Password, // hashed in CreateUser
		CreatedBy:    creator,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := services.CreateUser(ctx, user); err != nil {
		slog.Error("Failed to create user", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create user",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUsers lists users of a portal (defaults to staff)
func GetUsers(c *fiber.Ctx) error {
	portal := c.Query("portal", string(models.PortalStaff))
	if !models.IsValidPortal(portal) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid portal",
		})
	}

	users, err := services.GetUsersByPortal(c.Context(), models.Portal(portal))
	if err != nil {
		slog.Error("Failed to get users", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get users",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

// UpdateUserRole changes a user's sub-role
func UpdateUserRole(c *fiber.Ctx) error {
	userID := c.Params("userID")

	var req struct {
		Role string `json:"role" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := services.UpdateUserRole(c.Context(), userID, req.Role); err != nil {
		slog.Error("Failed to update user role", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update user role",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Role updated",
	})
}

// RunStockCheck triggers the reorder scan on demand from the admin portal
func RunStockCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	created, err := services.NewStockChecker().Run(ctx)
	if err != nil {
		slog.Error("Stock check failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Stock check failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"orders_created": created,
	})
}

// GetAlerts lists outstanding stock alerts
func GetAlerts(c *fiber.Ctx) error {
	alerts, err := services.ListUnresolvedAlerts(c.Context())
	if err != nil {
		slog.Error("Failed to list alerts", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list alerts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
