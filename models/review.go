package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a customer's rating of a restaurant. One review per customer per
// restaurant.
type Review struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    uint           `gorm:"not null;index:idx_reviews_tenant_customer,unique" json:"tenant_id"`
	CustomerID  uint           `gorm:"not null;index:idx_reviews_tenant_customer,unique" json:"customer_id"`
	Customer    Customer       `gorm:"foreignKey:CustomerID" json:"-"`
	Rating      int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment     string         `json:"comment"`
	DishRatings string         `json:"dish_ratings"` // optional per-dish ratings, stored as JSON text
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
