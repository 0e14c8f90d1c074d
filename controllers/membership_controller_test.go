package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bigboy-app/bigboy-api/middleware"
	"github.com/bigboy-app/bigboy-api/models"
)

func TestGetMembershipTiers(t *testing.T) {
	setupTestConfig()
	setupTestDB(t)

	router := setupTestRouter()
	router.GET("/membership/tiers", GetMembershipTiers)

	w := performRequest(t, router, "GET", "/membership/tiers", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	for _, tier := range []string{models.TierIron, models.TierSilver, models.TierGold, models.TierDiamond} {
		assert.Contains(t, data, tier)
	}
	gold := data[models.TierGold].(map[string]interface{})
	assert.Equal(t, float64(models.GoldThreshold), gold["min_spending"])
}

func TestGetMyMembership(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	customer, token := seedCustomer(t, db, "an@example.com", "password123")
	assert.NoError(t, db.Model(customer).Update("total_spending", 600_000).Error)

	router := setupTestRouter()
	router.GET("/membership/my-tier", middleware.RequireCustomer(), GetMyMembership)

	w := performRequest(t, router, "GET", "/membership/my-tier", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, models.TierIron, data["current_tier"])
	assert.Equal(t, models.TierSilver, data["next_tier"])
	assert.Equal(t, float64(400_000), data["spending_to_next"])
}

func TestUpdateMembershipTier(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)

	router := setupTestRouter()
	router.POST("/membership/update-tier", middleware.RequireCustomer(), UpdateMembershipTier)

	tests := []struct {
		name          string
		totalSpending int
		expectedTier  string
		tierUpdated   bool
	}{
		{name: "below silver stays iron", totalSpending: 500_000, expectedTier: models.TierIron, tierUpdated: false},
		{name: "silver threshold", totalSpending: models.SilverThreshold, expectedTier: models.TierSilver, tierUpdated: true},
		{name: "gold threshold", totalSpending: models.GoldThreshold, expectedTier: models.TierGold, tierUpdated: true},
		{name: "diamond threshold", totalSpending: 12_000_000, expectedTier: models.TierDiamond, tierUpdated: true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := "customer" + itoa(uint(i)) + "@example.com"
			customer, token := seedCustomer(t, db, email, "password123")
			assert.NoError(t, db.Model(customer).Update("total_spending", tt.totalSpending).Error)

			w := performRequest(t, router, "POST", "/membership/update-tier", nil, token)

			assert.Equal(t, http.StatusOK, w.Code)
			data := parseResponse(t, w)["data"].(map[string]interface{})
			assert.Equal(t, tt.expectedTier, data["membership_tier"])
			assert.Equal(t, tt.tierUpdated, data["tier_updated"])

			var stored models.Customer
			assert.NoError(t, db.First(&stored, customer.ID).Error)
			assert.Equal(t, tt.expectedTier, stored.MembershipTier)
		})
	}
}
