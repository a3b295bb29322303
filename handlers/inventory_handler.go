package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"inventory-pos/models"
	"inventory-pos/services"
)

// GetInventory lists all inventory items
func GetInventory(c *fiber.Ctx) error {
	items, err := services.ListInventory(c.Context())
	if err != nil {
		slog.Error("Failed to list inventory", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list inventory",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"items": items,
		"count": len(items),
	})
}

// GetInventoryItem returns one item
func GetInventoryItem(c *fiber.Ctx) error {
	item, err := services.GetInventoryItem(c.Context(), c.Params("itemID"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Item not found",
		})
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

// CreateInventoryItem adds a new item to stock
func CreateInventoryItem(c *fiber.Ctx) error {
	var req struct {
		Name             string  `json:"name" validate:"required"`
		SKU              string  `json:"sku" validate:"required"`
		Quantity         int     `json:"quantity"`
		ReorderThreshold int     `json:"reorder_threshold"`
		SupplierID       string  `json:"supplier_id" validate:"required"`
		UnitPrice        float64 `json:"unit_price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.SKU == "" || req.SupplierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, SKU, and supplier_id are required",
		})
	}

	item := &models.InventoryItem{
		Name:             req.Name,
		SKU:              req.SKU,
		Quantity:         req.Quantity,
		ReorderThreshold: req.ReorderThreshold,
		SupplierID:       req.SupplierID,
		UnitPrice:        req.UnitPrice,
	}

	if err := services.CreateInventoryItem(c.Context(), item); err != nil {
		slog.Error("Failed to create inventory item", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create item",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// AdjustInventory applies a quantity delta: negative for a sale, positive
// for restock. Low-stock detection is left to the scheduled check.
func AdjustInventory(c *fiber.Ctx) error {
	var req struct {
		Delta int `json:"delta" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil || req.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A non-zero delta is required",
		})
	}

	item, err := services.AdjustInventoryQuantity(c.Context(), c.Params("itemID"), req.Delta)
	if err != nil {
		slog.Error("Failed to adjust inventory", "error", err, "itemID", c.Params("itemID"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Failed to adjust inventory",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

// UpdateThreshold changes an item's reorder threshold
func UpdateThreshold(c *fiber.Ctx) error {
	var req struct {
		ReorderThreshold int `json:"reorder_threshold"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := services.UpdateReorderThreshold(c.Context(), c.Params("itemID"), req.ReorderThreshold); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Failed to update threshold",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Threshold updated",
	})
}
