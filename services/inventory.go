package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory-pos/models"
)

// CreateInventoryItem adds a new item to stock
func CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	collection := database.Collection("inventory")

	existing := collection.FindOne(ctx, bson.M{"sku": item.SKU})
	if existing.Err() != mongo.ErrNoDocuments {
		return fmt.Errorf("item already exists with SKU %s", item.SKU)
	}

	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// GetInventoryItem retrieves one item by ID
func GetInventoryItem(ctx context.Context, itemID string) (*models.InventoryItem, error) {
	collection := database.Collection("inventory")

	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID format: %w", err)
	}

	var item models.InventoryItem
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("item not found")
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

// ListInventory returns all items, newest first
func ListInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	collection := database.Collection("inventory")

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory items: %w", err)
	}
	return items, nil
}

// AdjustInventoryQuantity applies a delta (negative for a sale, positive
// for restock) and returns the updated item. The quantity never drops
// below zero.
func AdjustInventoryQuantity(ctx context.Context, itemID string, delta int) (*models.InventoryItem, error) {
	item, err := GetInventoryItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	newQuantity := item.Quantity + delta
	if newQuantity < 0 {
		return nil, fmt.Errorf("insufficient stock: have %d, requested %d", item.Quantity, -delta)
	}

	collection := database.Collection("inventory")
	_, err = collection.UpdateOne(
		ctx,
		bson.M{"_id": item.ID},
		bson.M{"$set": bson.M{"quantity": newQuantity, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust quantity: %w", err)
	}

	item.Quantity = newQuantity
	return item, nil
}

// UpdateReorderThreshold changes an item's reorder point
func UpdateReorderThreshold(ctx context.Context, itemID string, threshold int) error {
	if threshold < 0 {
		return fmt.Errorf("threshold must not be negative")
	}

	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return fmt.Errorf("invalid item ID format: %w", err)
	}

	collection := database.Collection("inventory")
	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"reorder_threshold": threshold, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update threshold: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("item not found")
	}
	return nil
}

// ListLowStock returns items whose quantity is below their reorder
// threshold, oldest first so long-standing shortages are handled before
// new ones.
func ListLowStock(ctx context.Context) ([]models.LowStockItem, error) {
	collection := database.Collection("inventory")

	cursor, err := collection.Find(
		ctx,
		bson.M{"$expr": bson.M{"$lt": bson.A{"$quantity", "$reorder_threshold"}}},
		options.Find().SetSort(bson.M{"created_at": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.LowStockItem
	for cursor.Next(ctx) {
		var doc models.InventoryItem
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode inventory item: %w", err)
		}
		items = append(items, models.LowStockItem{
			ID:               doc.ID.Hex(),
			Name:             doc.Name,
			Quantity:         doc.Quantity,
			ReorderThreshold: doc.ReorderThreshold,
			SupplierID:       doc.SupplierID,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate low stock: %w", err)
	}
	return items, nil
}
