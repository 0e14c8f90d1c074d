package models

import (
	"time"
)

// Table status values
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableHidden    = "hidden"
)

// Table represents a physical table within a tenant. The opaque Token is
// what the table's printed QR code resolves to; it is long-lived and only
// rotated by re-provisioning.
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index:idx_tables_tenant_number,unique" json:"tenant_id"`
	Number    int       `gorm:"not null;index:idx_tables_tenant_number,unique" json:"number"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	Status    string    `gorm:"not null;default:'available'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Table model
func (Table) TableName() string {
	return "tables"
}
