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

// CreateOrderNotification notifies a supplier about a newly created
// automated order and returns the notification ID
func CreateOrderNotification(ctx context.Context, orderID, supplierID, itemName string, quantity int) (string, error) {
	collection := database.Collection("notifications")

	notification := &models.Notification{
		ID:            primitive.NewObjectID(),
		RecipientType: models.RecipientSupplier,
		RecipientID:   supplierID,
		OrderID:       orderID,
		Message:       fmt.Sprintf("New automated order: %d x %s", quantity, itemName),
		IsRead:        false,
		Status:        models.NotificationUnread,
		CreatedAt:     time.Now(),
	}

	_, err := collection.InsertOne(ctx, notification)
	if err != nil {
		return "", fmt.Errorf("failed to create notification: %w", err)
	}
	return notification.ID.Hex(), nil
}

// GetUnreadCount counts unread notifications for a recipient. The is_read
// flag and the status field can drift in old documents, so a notification
// counts as unread only while both say so.
func GetUnreadCount(ctx context.Context, recipientType, recipientID string) (int64, error) {
	collection := database.Collection("notifications")

	count, err := collection.CountDocuments(ctx, bson.M{
		"recipient_type": recipientType,
		"recipient_id":   recipientID,
		"is_read":        bson.M{"$ne": true},
		"status":         bson.M{"$ne": models.NotificationRead},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// ListNotifications returns a recipient's notifications, newest first
func ListNotifications(ctx context.Context, recipientType, recipientID string, limit int64) ([]*models.Notification, error) {
	collection := database.Collection("notifications")

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := collection.Find(ctx, bson.M{
		"recipient_type": recipientType,
		"recipient_id":   recipientID,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead sets both read flags
func MarkNotificationRead(ctx context.Context, notificationID string) error {
	collection := database.Collection("notifications")

	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"is_read": true, "status": models.NotificationRead}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}
