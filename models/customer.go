package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership tiers, ordered by total spending (VND)
const (
	TierIron    = "Iron"
	TierSilver  = "Silver"
	TierGold    = "Gold"
	TierDiamond = "Diamond"
)

// Spending thresholds for each tier
const (
	SilverThreshold  = 1_000_000
	GoldThreshold    = 5_000_000
	DiamondThreshold = 10_000_000
)

// Customer is a registered mobile-app user with a membership tier. Distinct
// from Guest: customers authenticate with a password and exist across
// visits.
type Customer struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"` // bcrypt hash
	Phone          string         `json:"phone"`
	Avatar         string         `json:"avatar"`
	MembershipTier string         `gorm:"not null;default:'Iron'" json:"membership_tier"`
	TotalSpending  int            `gorm:"not null;default:0" json:"total_spending"`
	Points         int            `gorm:"not null;default:0" json:"points"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// TierForSpending returns the membership tier earned by a total spending
func TierForSpending(total int) string {
	switch {
	case total >= DiamondThreshold:
		return TierDiamond
	case total >= GoldThreshold:
		return TierGold
	case total >= SilverThreshold:
		return TierSilver
	default:
		return TierIron
	}
}
