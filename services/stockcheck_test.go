package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-pos/models"
)

type fakeInventory struct {
	items []models.LowStockItem
}

func (f *fakeInventory) ListLowStock(ctx context.Context) ([]models.LowStockItem, error) {
	return f.items, nil
}

type fakeAlerts struct {
	existing   map[string]bool
	failCreate map[string]bool
	created    []string
}

func (f *fakeAlerts) Exists(ctx context.Context, inventoryID, alertType string) (bool, error) {
	return f.existing[inventoryID], nil
}

func (f *fakeAlerts) Create(ctx context.Context, inventoryID, alertType string, resolved bool) (string, error) {
	if f.failCreate[inventoryID] {
		return "", fmt.Errorf("insert failed")
	}
	f.created = append(f.created, inventoryID)
	return "alert-" + inventoryID, nil
}

type createdOrder struct {
	inventoryID string
	supplierID  string
	quantity    int
}

type fakeOrders struct {
	failCreate map[string]bool
	created    []createdOrder
}

func (f *fakeOrders) CreateAutomated(ctx context.Context, inventoryID, supplierID string, quantity int) (string, error) {
	if f.failCreate[inventoryID] {
		return "", fmt.Errorf("insert failed")
	}
	f.created = append(f.created, createdOrder{inventoryID, supplierID, quantity})
	return "order-" + inventoryID, nil
}

type sentNotification struct {
	orderID  string
	itemName string
	quantity int
}

type fakeNotifications struct {
	failCreate bool
	sent       []sentNotification
}

func (f *fakeNotifications) CreateOrderNotification(ctx context.Context, orderID, supplierID, itemName string, quantity int) (string, error) {
	if f.failCreate {
		return "", fmt.Errorf("insert failed")
	}
	f.sent = append(f.sent, sentNotification{orderID, itemName, quantity})
	return "notif-" + orderID, nil
}

func newTestChecker() (*StockChecker, *fakeInventory, *fakeAlerts, *fakeOrders, *fakeNotifications) {
	inv := &fakeInventory{}
	alerts := &fakeAlerts{existing: map[string]bool{}, failCreate: map[string]bool{}}
	orders := &fakeOrders{failCreate: map[string]bool{}}
	notifs := &fakeNotifications{}
	return &StockChecker{
		Inventory:     inv,
		Alerts:        alerts,
		Orders:        orders,
		Notifications: notifs,
	}, inv, alerts, orders, notifs
}

func TestStockCheckOrderQuantity(t *testing.T) {
	checker, inv, _, orders, notifs := newTestChecker()
	inv.items = []models.LowStockItem{
		{ID: "i1", Name: "Beans", Quantity: 5, ReorderThreshold: 20, SupplierID: "sup-1"},
	}

	created, err := checker.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	require.Len(t, orders.created, 1)
	assert.Equal(t, 35, orders.created[0].quantity) // 2*20 - 5
	assert.Equal(t, "sup-1", orders.created[0].supplierID)

	require.Len(t, notifs.sent, 1)
	assert.Equal(t, "order-i1", notifs.sent[0].orderID)
	assert.Equal(t, "Beans", notifs.sent[0].itemName)
	assert.Equal(t, 35, notifs.sent[0].quantity)
}

func TestStockCheckIdempotence(t *testing.T) {
	checker, inv, alerts, orders, notifs := newTestChecker()
	inv.items = []models.LowStockItem{
		{ID: "i1", Name: "Beans", Quantity: 5, ReorderThreshold: 20, SupplierID: "sup-1"},
	}
	alerts.existing["i1"] = true

	created, err := checker.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Empty(t, alerts.created)
	assert.Empty(t, orders.created)
	assert.Empty(t, notifs.sent)
}

func TestStockCheckAlertFailureSkipsRow(t *testing.T) {
	checker, inv, alerts, orders, _ := newTestChecker()
	inv.items = []models.LowStockItem{
		{ID: "i1", Name: "Beans", Quantity: 5, ReorderThreshold: 20, SupplierID: "sup-1"},
		{ID: "i2", Name: "Rice", Quantity: 2, ReorderThreshold: 10, SupplierID: "sup-2"},
	}
	alerts.failCreate["i1"] = true

	created, err := checker.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// No order for the failed row, and the next row still ran
	require.Len(t, orders.created, 1)
	assert.Equal(t, "i2", orders.created[0].inventoryID)
	assert.Equal(t, 18, orders.created[0].quantity) // 2*10 - 2
}

func TestStockCheckOrderFailureNotCounted(t *testing.T) {
	checker, inv, alerts, orders, notifs := newTestChecker()
	inv.items = []models.LowStockItem{
		{ID: "i1", Name: "Beans", Quantity: 5, ReorderThreshold: 20, SupplierID: "sup-1"},
		{ID: "i2", Name: "Rice", Quantity: 2, ReorderThreshold: 10, SupplierID: "sup-2"},
	}
	orders.failCreate["i1"] = true

	created, err := checker.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// The alert was still raised for the failed order's row
	assert.Equal(t, []string{"i1", "i2"}, alerts.created)
	require.Len(t, notifs.sent, 1)
	assert.Equal(t, "order-i2", notifs.sent[0].orderID)
}

func TestStockCheckNotificationFailureStillCounts(t *testing.T) {
	checker, inv, _, orders, notifs := newTestChecker()
	inv.items = []models.LowStockItem{
		{ID: "i1", Name: "Beans", Quantity: 5, ReorderThreshold: 20, SupplierID: "sup-1"},
	}
	notifs.failCreate = true

	created, err := checker.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Len(t, orders.created, 1)
}

func TestStockCheckProcessesRowsInOrder(t *testing.T) {
	checker, inv, alerts, _, _ := newTestChecker()
	inv.items = []models.LowStockItem{
		{ID: "i3", Name: "C", Quantity: 1, ReorderThreshold: 5, SupplierID: "s"},
		{ID: "i1", Name: "A", Quantity: 1, ReorderThreshold: 5, SupplierID: "s"},
		{ID: "i2", Name: "B", Quantity: 1, ReorderThreshold: 5, SupplierID: "s"},
	}

	created, err := checker.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, []string{"i3", "i1", "i2"}, alerts.created)
}

func TestStockCheckEmptyInventory(t *testing.T) {
	checker, _, _, orders, _ := newTestChecker()

	created, err := checker.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Empty(t, orders.created)
}
