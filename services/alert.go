package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory-pos/models"
)

// AlertExists reports whether an unresolved alert of the given type exists
// for an inventory item
func AlertExists(ctx context.Context, inventoryID, alertType string) (bool, error) {
	collection := database.Collection("stock_alerts")

	count, err := collection.CountDocuments(ctx, bson.M{
		"inventory_id": inventoryID,
		"alert_type":   alertType,
		"is_resolved":  false,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check alert existence: %w", err)
	}
	return count > 0, nil
}

// CreateAlert records a stock alert and returns its ID
func CreateAlert(ctx context.Context, inventoryID, alertType string, resolved bool) (string, error) {
	collection := database.Collection("stock_alerts")

	alert := &models.StockAlert{
		ID:          primitive.NewObjectID(),
		InventoryID: inventoryID,
		AlertType:   alertType,
		IsResolved:  resolved,
		CreatedAt:   time.Now(),
	}

	_, err := collection.InsertOne(ctx, alert)
	if err != nil {
		return "", fmt.Errorf("failed to create alert: %w", err)
	}
	return alert.ID.Hex(), nil
}

// ResolveAlert marks an alert as resolved
func ResolveAlert(ctx context.Context, alertID string) error {
	collection := database.Collection("stock_alerts")

	objectID, err := primitive.ObjectIDFromHex(alertID)
	if err != nil {
		return fmt.Errorf("invalid alert ID format: %w", err)
	}

	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"is_resolved": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("alert not found")
	}
	return nil
}

// ListUnresolvedAlerts returns outstanding alerts, newest first
func ListUnresolvedAlerts(ctx context.Context) ([]*models.StockAlert, error) {
	collection := database.Collection("stock_alerts")

	cursor, err := collection.Find(
		ctx,
		bson.M{"is_resolved": false},
		options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*models.StockAlert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return alerts, nil
}
