package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"inventory-pos/services"
)

// recipientFromLocals derives the notification recipient from the session.
// Suppliers receive notifications under their supplier ID; everyone else
// under their user ID.
func recipientFromLocals(c *fiber.Ctx) (string, string) {
	portal, _ := c.Locals("portal").(string)
	if portal == "supplier" {
		supplierID, _ := c.Locals("supplier_id").(string)
		return portal, supplierID
	}
	userID, _ := c.Locals("user_id").(string)
	return portal, userID
}

// GetUnreadCount returns the unread notification count for the caller.
// Polled by the UI badge.
func GetUnreadCount(c *fiber.Ctx) error {
	recipientType, recipientID := recipientFromLocals(c)
	if recipientID == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": 0})
	}

	count, err := services.GetUnreadCount(c.Context(), recipientType, recipientID)
	if err != nil {
		slog.Error("Failed to count notifications", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count notifications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

// GetNotifications lists the caller's recent notifications
func GetNotifications(c *fiber.Ctx) error {
	recipientType, recipientID := recipientFromLocals(c)

	limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)
	notifications, err := services.ListNotifications(c.Context(), recipientType, recipientID, limit)
	if err != nil {
		slog.Error("Failed to list notifications", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list notifications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(c *fiber.Ctx) error {
	if err := services.MarkNotificationRead(c.Context(), c.Params("notificationID")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}
