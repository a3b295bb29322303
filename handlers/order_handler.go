package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"inventory-pos/services"
)

// GetOrders lists orders. Supplier callers are scoped to their own
// supplier ID from the session; admin callers see everything.
func GetOrders(c *fiber.Ctx) error {
	supplierID := ""
	if portal, _ := c.Locals("portal").(string); portal == "supplier" {
		supplierID, _ = c.Locals("supplier_id").(string)
		if supplierID == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "No supplier associated with this user",
			})
		}
	}

	orders, err := services.ListOrders(c.Context(), supplierID)
	if err != nil {
		slog.Error("Failed to list orders", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list orders",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order
func GetOrder(c *fiber.Ctx) error {
	order, err := services.GetOrder(c.Context(), c.Params("orderID"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if portal, _ := c.Locals("portal").(string); portal == "supplier" {
		supplierID, _ := c.Locals("supplier_id").(string)
		if order.SupplierID != supplierID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied to this order",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(order)
}

// UpdateOrderStatus applies a lifecycle transition to an order
func UpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status is required",
		})
	}

	orderID := c.Params("orderID")

	if portal, _ := c.Locals("portal").(string); portal == "supplier" {
		order, err := services.GetOrder(c.Context(), orderID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		supplierID, _ := c.Locals("supplier_id").(string)
		if order.SupplierID != supplierID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied to this order",
			})
		}
	}

	if err := services.UpdateOrderStatus(c.Context(), orderID, req.Status); err != nil {
		slog.Error("Failed to update order status", "error", err, "orderID", orderID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Failed to update order status",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Order status updated",
	})
}
