package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory-pos/models"
)

// CreateAutomatedOrder creates a pending purchase order on behalf of the
// stock check and returns its ID
func CreateAutomatedOrder(ctx context.Context, inventoryID, supplierID string, quantity int) (string, error) {
	if quantity <= 0 {
		return "", fmt.Errorf("order quantity must be positive, got %d", quantity)
	}

	collection := database.Collection("orders")

	order := &models.Order{
		ID:          primitive.NewObjectID(),
		OrderRef:    uuid.NewString(),
		InventoryID: inventoryID,
		SupplierID:  supplierID,
		Quantity:    quantity,
		Status:      models.OrderStatusPending,
		IsAutomated: true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	_, err := collection.InsertOne(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	slog.Info("Automated order created",
		"orderID", order.ID.Hex(),
		"inventoryID", inventoryID,
		"supplierID", supplierID,
		"quantity", quantity)

	return order.ID.Hex(), nil
}

// GetOrder retrieves one order by ID
func GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	collection := database.Collection("orders")

	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format: %w", err)
	}

	var order models.Order
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// ListOrders returns orders, newest first, optionally filtered by supplier
func ListOrders(ctx context.Context, supplierID string) ([]*models.Order, error) {
	collection := database.Collection("orders")

	filter := bson.M{}
	if supplierID != "" {
		filter["supplier_id"] = supplierID
	}

	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus applies a status transition, validating it against the
// order lifecycle (pending -> confirmed -> completed, cancel from pending
// or confirmed)
func UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	order, err := GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.CanTransitionTo(status) {
		return fmt.Errorf("cannot transition order from %s to %s", order.Status, status)
	}

	collection := database.Collection("orders")
	_, err = collection.UpdateOne(
		ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	slog.Info("Order status updated", "orderID", orderID, "from", order.Status, "to", status)
	return nil
}
