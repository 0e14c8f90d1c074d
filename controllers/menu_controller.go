package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/models"
)

// GetMenu handles GET /api/v1/menu - lists available dishes, optionally
// filtered by search text, category and tenant
func GetMenu(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Dish{}).Where("status = ?", models.DishAvailable)

	if tenantID := c.Query("tenantId"); tenantID != "" {
		if id, err := strconv.ParseUint(tenantID, 10, 32); err == nil {
			query = query.Where("tenant_id = ?", uint(id))
		}
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var dishes []models.Dish
	if err := query.Order("category, name").Find(&dishes).Error; err != nil {
		log.Printf("Failed to load menu: %v", err)
		respondInternalError(c)
		return
	}

	// Distinct category list for the menu's filter bar
	categories := make([]string, 0)
	seen := make(map[string]bool)
	for _, dish := range dishes {
		if dish.Category != "" && !seen[dish.Category] {
			seen[dish.Category] = true
			categories = append(categories, dish.Category)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"dishes":     dishes,
			"categories": categories,
		},
	})
}

// GetDish handles GET /api/v1/dishes/:id - returns one dish
func GetDish(c *gin.Context) {
	dishID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISH_NOT_FOUND",
				"message": "Dish not found",
			},
		})
		return
	}

	var dish models.Dish
	if err := config.GetDB().First(&dish, uint(dishID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISH_NOT_FOUND",
				"message": "Dish not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dish,
	})
}
