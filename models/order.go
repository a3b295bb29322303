package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a purchase order sent to a supplier. Automated orders are
// created by the stock check without human initiation.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderRef    string             `bson:"order_ref" json:"order_ref"`
	InventoryID string             `bson:"inventory_id" json:"inventory_id"`
	SupplierID  string             `bson:"supplier_id" json:"supplier_id"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Status      string             `bson:"status" json:"status"`
	IsAutomated bool               `bson:"is_automated" json:"is_automated"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CanTransitionTo reports whether a status change is allowed
func (o *Order) CanTransitionTo(status string) bool {
	switch o.Status {
	case OrderStatusPending:
		return status == OrderStatusConfirmed || status == OrderStatusCancelled
	case OrderStatusConfirmed:
		return status == OrderStatusCompleted || status == OrderStatusCancelled
	}
	return false
}
