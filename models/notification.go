package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification recipient types
const (
	RecipientAdmin    = "admin"
	RecipientStaff    = "staff"
	RecipientSupplier = "supplier"
)

// Notification statuses. IsRead and Status can drift in old documents, so
// unread counting checks both.
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

// Notification is a message targeted at a recipient role+id
type Notification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientType string             `bson:"recipient_type" json:"recipient_type"`
	RecipientID   string             `bson:"recipient_id" json:"recipient_id"`
	OrderID       string             `bson:"order_id,omitempty" json:"order_id,omitempty"`
	Message       string             `bson:"message" json:"message"`
	IsRead        bool               `bson:"is_read" json:"is_read"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
