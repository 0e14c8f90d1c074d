package models

import (
	"time"
)

// Guest is an ephemeral, table-scoped diner identity. It is never deleted by
// the ordering flow so that historical orders keep their attribution; a new
// QR scan at the same table revives the most recent Guest row instead of
// creating a duplicate.
type Guest struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	TenantID              uint       `gorm:"not null;index:idx_guests_tenant_table" json:"tenant_id"`
	TableNumber           int        `gorm:"not null;index:idx_guests_tenant_table" json:"table_number"`
	Name                  string     `gorm:"not null" json:"name"`
	RefreshToken          *string    `gorm:"uniqueIndex" json:"-"` // nil after logout
	RefreshTokenExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Guest model
func (Guest) TableName() string {
	return "guests"
}
