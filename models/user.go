package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Portal identifies which of the three portals a user logs in to
type Portal string

const (
	PortalAdmin    Portal = "admin"
	PortalStaff    Portal = "staff"
	PortalSupplier Portal = "supplier"
)

// Sub-roles within a portal, carried in session data as "role"
const (
	SubRoleManager = "manager"
	SubRoleCashier = "cashier"
)

// User represents a user in the system
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	FullName string             `bson:"full_name" json:"full_name"`

	// Which portal this user belongs to (admin, staff, supplier)
	Portal Portal `bson:"portal" json:"portal"`

	// Finer-grained role within the portal (e.g. manager, cashier)
	Role string `bson:"role" json:"role"`

	// For supplier users - which supplier they act for
	SupplierID string `bson:"supplier_id,omitempty" json:"supplier_id,omitempty"`

	// Authentication
	PasswordHash string `bson:"password_hash" json:"-"`

	// Status
	IsActive  bool      `bson:"is_active" json:"is_active"`
	LastLogin time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`

	// Metadata
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	CreatedBy string    `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// PortalPermissions defines what each portal's users can do
type PortalPermissions struct {
	Portal      Portal
	Description string
	Permissions []string
}

// GetPortalPermissions returns the permissions for each portal
func GetPortalPermissions() map[Portal]PortalPermissions {
	return map[Portal]PortalPermissions{
		PortalAdmin: {
			Portal:      PortalAdmin,
			Description: "Back-office administration",
			Permissions: []string{
				"manage_users",
				"manage_inventory",
				"manage_suppliers",
				"manage_orders",
				"view_reports",
				"run_stock_check",
			},
		},
		PortalStaff: {
			Portal:      PortalStaff,
			Description: "Point-of-sale operations",
			Permissions: []string{
				"process_sales",
				"adjust_inventory",
				"view_inventory",
				"view_notifications",
			},
		},
		PortalSupplier: {
			Portal:      PortalSupplier,
			Description: "Supplier order portal",
			Permissions: []string{
				"view_orders",
				"confirm_orders",
				"view_notifications",
			},
		},
	}
}

// IsValidPortal checks if a portal name is valid
func IsValidPortal(portal string) bool {
	switch Portal(portal) {
	case PortalAdmin, PortalStaff, PortalSupplier:
		return true
	}
	return false
}

// SessionData returns the attribute map stored in a login instance for this user
func (u *User) SessionData() map[string]interface{} {
	data := map[string]interface{}{
		"user_id":  u.ID.Hex(),
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	}
	if u.SupplierID != "" {
		data["supplier_id"] = u.SupplierID
	}
	return data
}
