package services

import (
	"context"
	"log/slog"

	"inventory-pos/models"
)

// Collaborator interfaces for the stock check. Production runs use the
// Mongo-backed implementations below; tests inject fakes.

type InventoryReader interface {
	ListLowStock(ctx context.Context) ([]models.LowStockItem, error)
}

type AlertStore interface {
	Exists(ctx context.Context, inventoryID, alertType string) (bool, error)
	Create(ctx context.Context, inventoryID, alertType string, resolved bool) (string, error)
}

type OrderStore interface {
	CreateAutomated(ctx context.Context, inventoryID, supplierID string, quantity int) (string, error)
}

type NotificationStore interface {
	CreateOrderNotification(ctx context.Context, orderID, supplierID, itemName string, quantity int) (string, error)
}

// StockChecker closes the loop between low inventory and supplier
// ordering: scan items below their reorder threshold, raise an alert once
// per shortage, place an automated order, and notify the supplier.
type StockChecker struct {
	Inventory     InventoryReader
	Alerts        AlertStore
	Orders        OrderStore
	Notifications NotificationStore
}

// NewStockChecker wires the production Mongo-backed collaborators
func NewStockChecker() *StockChecker {
	return &StockChecker{
		Inventory:     mongoInventoryReader{},
		Alerts:        mongoAlertStore{},
		Orders:        mongoOrderStore{},
		Notifications: mongoNotificationStore{},
	}
}

// Run processes low-stock items in the order the inventory reader returns
// them and reports the number of orders created. Each item is handled
// independently: a failure on one item is logged and skipped, and the next
// scheduled run picks it up again. An existing unresolved reorder alert
// means the item is already in flight and is skipped.
func (sc *StockChecker) Run(ctx context.Context) (int, error) {
	items, err := sc.Inventory.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, item := range items {
		exists, err := sc.Alerts.Exists(ctx, item.ID, models.AlertTypeReorder)
		if err != nil {
			slog.Error("Failed to check existing alert", "inventoryID", item.ID, "error", err)
			continue
		}
		if exists {
			continue
		}

		if _, err := sc.Alerts.Create(ctx, item.ID, models.AlertTypeReorder, false); err != nil {
			slog.Error("Failed to create alert", "inventoryID", item.ID, "error", err)
			continue
		}

		// Order enough to land at double the threshold. The item qualified
		// as low stock, so quantity < threshold and the result is positive.
		orderQuantity := 2*item.ReorderThreshold - item.Quantity

		orderID, err := sc.Orders.CreateAutomated(ctx, item.ID, item.SupplierID, orderQuantity)
		if err != nil {
			slog.Error("Failed to create automated order", "inventoryID", item.ID, "error", err)
			continue
		}
		created++

		if _, err := sc.Notifications.CreateOrderNotification(ctx, orderID, item.SupplierID, item.Name, orderQuantity); err != nil {
			slog.Error("Failed to notify supplier", "orderID", orderID, "supplierID", item.SupplierID, "error", err)
		}
	}

	return created, nil
}

type mongoInventoryReader struct{}

func (mongoInventoryReader) ListLowStock(ctx context.Context) ([]models.LowStockItem, error) {
	return ListLowStock(ctx)
}

type mongoAlertStore struct{}

func (mongoAlertStore) Exists(ctx context.Context, inventoryID, alertType string) (bool, error) {
	return AlertExists(ctx, inventoryID, alertType)
}

func (mongoAlertStore) Create(ctx context.Context, inventoryID, alertType string, resolved bool) (string, error) {
	return CreateAlert(ctx, inventoryID, alertType, resolved)
}

type mongoOrderStore struct{}

func (mongoOrderStore) CreateAutomated(ctx context.Context, inventoryID, supplierID string, quantity int) (string, error) {
	return CreateAutomatedOrder(ctx, inventoryID, supplierID, quantity)
}

type mongoNotificationStore struct{}

func (mongoNotificationStore) CreateOrderNotification(ctx context.Context, orderID, supplierID, itemName string, quantity int) (string, error) {
	return CreateOrderNotification(ctx, orderID, supplierID, itemName, quantity)
}
