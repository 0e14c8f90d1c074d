package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/middleware"
	"github.com/bigboy-app/bigboy-api/models"
)

// GetMembershipTiers handles GET /api/v1/membership/tiers - static tier
// table shown in the app
func GetMembershipTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			models.TierIron: gin.H{
				"min_spending": 0,
				"benefits":     []string{"1% points", "Basic offers"},
			},
			models.TierSilver: gin.H{
				"min_spending": models.SilverThreshold,
				"benefits":     []string{"2% points", "5% discount", "Priority booking"},
			},
			models.TierGold: gin.H{
				"min_spending": models.GoldThreshold,
				"benefits":     []string{"3% points", "10% discount", "Birthday gift", "High priority"},
			},
			models.TierDiamond: gin.H{
				"min_spending": models.DiamondThreshold,
				"benefits":     []string{"5% points", "15% discount", "Special gifts", "Top priority", "VIP service"},
			},
		},
	})
}

// GetMyMembership handles GET /api/v1/membership/my-tier - the customer's
// current tier plus what it takes to reach the next one
func GetMyMembership(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	var nextTier *string
	spendingToNext := 0
	switch customer.MembershipTier {
	case models.TierIron:
		tier := models.TierSilver
		nextTier = &tier
		spendingToNext = max(0, models.SilverThreshold-customer.TotalSpending)
	case models.TierSilver:
		tier := models.TierGold
		nextTier = &tier
		spendingToNext = max(0, models.GoldThreshold-customer.TotalSpending)
	case models.TierGold:
		tier := models.TierDiamond
		nextTier = &tier
		spendingToNext = max(0, models.DiamondThreshold-customer.TotalSpending)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"current_tier":     customer.MembershipTier,
			"total_spending":   customer.TotalSpending,
			"points":           customer.Points,
			"next_tier":        nextTier,
			"spending_to_next": spendingToNext,
		},
	})
}

// UpdateMembershipTier handles POST /api/v1/membership/update-tier -
// recomputes the customer's tier from their total spending
func UpdateMembershipTier(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	oldTier := customer.MembershipTier
	customer.MembershipTier = models.TierForSpending(customer.TotalSpending)
	tierUpdated := oldTier != customer.MembershipTier

	if tierUpdated {
		if err := config.GetDB().Model(customer).Update("membership_tier", customer.MembershipTier).Error; err != nil {
			log.Printf("Failed to update tier for customer %d: %v", customer.ID, err)
			respondInternalError(c)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"membership_tier": customer.MembershipTier,
			"tier_updated":    tierUpdated,
			"total_spending":  customer.TotalSpending,
		},
	})
}
