package models

import (
	"time"
)

// Order status values. The guest flow only ever creates orders in
// OrderPending; later transitions (kitchen marks ready, staff serves and
// settles) are driven by staff tooling and consumed here read-only.
const (
	OrderPending = "PENDING"
	OrderReady   = "READY"
	OrderServed  = "SERVED"
	OrderPaid    = "PAID"
)

// UnpaidOrderStatuses are the states a payment request aggregates over.
var UnpaidOrderStatuses = []string{OrderPending, OrderReady, OrderServed}

// Order is one order line: one dish snapshot, one quantity, for one guest at
// one table.
type Order struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	TenantID       uint         `gorm:"not null;index" json:"tenant_id"`
	GuestID        uint         `gorm:"not null;index" json:"guest_id"`
	Guest          Guest        `gorm:"foreignKey:GuestID" json:"-"`
	TableNumber    int          `gorm:"not null" json:"table_number"`
	DishSnapshotID uint         `gorm:"not null;uniqueIndex" json:"dish_snapshot_id"`
	DishSnapshot   DishSnapshot `gorm:"foreignKey:DishSnapshotID" json:"dish_snapshot"`
	Quantity       int          `gorm:"not null;check:quantity > 0" json:"quantity"`
	Notes          string       `json:"notes"`
	Status         string       `gorm:"not null;default:'PENDING';index" json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsValidOrderStatus reports whether s is a recognized order status
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderReady, OrderServed, OrderPaid:
		return true
	}
	return false
}
