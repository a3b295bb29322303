package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryItem represents one stocked product
type InventoryItem struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	SKU              string             `bson:"sku" json:"sku"`
	Quantity         int                `bson:"quantity" json:"quantity"`
	ReorderThreshold int                `bson:"reorder_threshold" json:"reorder_threshold"`
	SupplierID       string             `bson:"supplier_id" json:"supplier_id"`
	UnitPrice        float64            `bson:"unit_price" json:"unit_price"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// LowStockItem is the projection the stock check works over
type LowStockItem struct {
	ID               string `json:"inventory_id"`
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	ReorderThreshold int    `json:"reorder_threshold"`
	SupplierID       string `json:"supplier_id"`
}

// Alert types
const (
	AlertTypeReorder = "reorder"
)

// StockAlert represents "inventory item X needs reordering"
type StockAlert struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InventoryID string             `bson:"inventory_id" json:"inventory_id"`
	AlertType   string             `bson:"alert_type" json:"alert_type"`
	IsResolved  bool               `bson:"is_resolved" json:"is_resolved"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
