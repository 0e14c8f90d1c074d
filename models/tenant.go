package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant status values
const (
	TenantActive    = "active"
	TenantInactive  = "inactive"
	TenantSuspended = "suspended"
)

// Tenant subscription plans
const (
	SubscriptionFree    = "free"
	SubscriptionBasic   = "basic"
	SubscriptionPremium = "premium"
)

// Tenant represents a restaurant account boundary. Every table, dish, guest
// and order belongs to exactly one tenant.
type Tenant struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Logo         string         `json:"logo"`
	Description  string         `json:"description"`
	Status       string         `gorm:"not null;default:'active'" json:"status"`
	Subscription string         `gorm:"not null;default:'free'" json:"subscription"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}
