package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/models"
)

// UpdateRestaurantStatusRequest represents the request body for a status
// change
type UpdateRestaurantStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListRestaurants handles GET /api/v1/admin/restaurants - paginated tenant
// listing with an optional status filter
func ListRestaurants(c *gin.Context) {
	page, limit := pagination(c)

	db := config.GetDB()
	query := db.Model(&models.Tenant{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tenants []models.Tenant
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&tenants).Error; err != nil {
		log.Printf("Failed to list restaurants: %v", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tenants,
	})
}

// UpdateRestaurantStatus handles PUT /api/v1/admin/restaurants/:id/status
func UpdateRestaurantStatus(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondRestaurantNotFound(c)
		return
	}

	var req UpdateRestaurantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "status is required",
			},
		})
		return
	}

	switch req.Status {
	case models.TenantActive, models.TenantInactive, models.TenantSuspended:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown restaurant status",
			},
		})
		return
	}

	db := config.GetDB()
	var tenant models.Tenant
	if err := db.First(&tenant, uint(restaurantID)).Error; err != nil {
		respondRestaurantNotFound(c)
		return
	}

	if err := db.Model(&tenant).Update("status", req.Status).Error; err != nil {
		log.Printf("Failed to update status for restaurant %d: %v", tenant.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":     tenant.ID,
			"status": req.Status,
		},
	})
}

// ListUsers handles GET /api/v1/admin/users - paginated staff account
// listing with an optional role filter
func ListUsers(c *gin.Context) {
	page, limit := pagination(c)

	db := config.GetDB()
	query := db.Model(&models.Account{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var accounts []models.Account
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&accounts).Error; err != nil {
		log.Printf("Failed to list users: %v", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    accounts,
	})
}
