package models

import (
	"time"

	"gorm.io/gorm"
)

// Dish availability status values
const (
	DishAvailable   = "available"
	DishUnavailable = "unavailable"
)

// Dish is a sellable menu item. Prices are integral VND.
type Dish struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    uint           `gorm:"not null;index" json:"tenant_id"`
	Name        string         `gorm:"not null" json:"name"`
	Price       int            `gorm:"not null" json:"price"`
	Description string         `json:"description"`
	Image       string         `json:"image"` // S3 key of the dish photo
	Category    string         `gorm:"index" json:"category"`
	Status      string         `gorm:"not null;default:'available'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Dish model
func (Dish) TableName() string {
	return "dishes"
}

// DishSnapshot is an immutable copy of a dish's commercial attributes taken
// at the moment an order line is created. Later edits to the live Dish must
// never change what a historical order charged, so the snapshot is written
// once and never updated.
type DishSnapshot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DishID      uint      `gorm:"not null;index" json:"dish_id"` // traceability back to the live dish
	Name        string    `gorm:"not null" json:"name"`
	Price       int       `gorm:"not null" json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Status      string    `gorm:"not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the DishSnapshot model
func (DishSnapshot) TableName() string {
	return "dish_snapshots"
}
