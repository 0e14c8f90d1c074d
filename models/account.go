package models

import (
	"time"

	"gorm.io/gorm"
)

// Account roles
const (
	RoleAdmin    = "Admin"
	RoleOwner    = "Owner"
	RoleEmployee = "Employee"
)

// Account is a password-backed staff identity. Platform admins have no
// tenant; owners and employees belong to one.
type Account struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"` // bcrypt hash
	Avatar    string         `json:"avatar"`
	Role      string         `gorm:"not null;default:'Employee'" json:"role"`
	TenantID  *uint          `gorm:"index" json:"tenant_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
