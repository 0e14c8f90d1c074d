package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/middleware"
	"github.com/bigboy-app/bigboy-api/models"
)

// CreateReviewRequest represents the request body for creating a review
type CreateReviewRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment"`
	DishRatings string `json:"dish_ratings"`
}

// UpdateReviewRequest represents the request body for updating a review
type UpdateReviewRequest struct {
	Rating      *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment     *string `json:"comment"`
	DishRatings *string `json:"dish_ratings"`
}

// ListReviews handles GET /api/v1/restaurants/:id/reviews - paginated
// reviews for one restaurant
func ListReviews(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondRestaurantNotFound(c)
		return
	}
	page, limit := pagination(c)

	db := config.GetDB()
	var reviews []models.Review
	err = db.Preload("Customer").
		Where("tenant_id = ?", uint(restaurantID)).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		log.Printf("Failed to list reviews for restaurant %d: %v", restaurantID, err)
		respondInternalError(c)
		return
	}

	var total int64
	db.Model(&models.Review{}).Where("tenant_id = ?", uint(restaurantID)).Count(&total)

	items := make([]gin.H, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, gin.H{
			"id":            review.ID,
			"customer_id":   review.CustomerID,
			"customer_name": review.Customer.Name,
			"rating":        review.Rating,
			"comment":       review.Comment,
			"dish_ratings":  review.DishRatings,
			"created_at":    review.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": items,
			"total": total,
		},
	})
}

// CreateReview handles POST /api/v1/restaurants/:id/reviews - one review per
// customer per restaurant
func CreateReview(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondRestaurantNotFound(c)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Rating between 1 and 5 is required",
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

	review := models.Review{
		TenantID:    tenant.ID,
		CustomerID:  customer.ID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		DishRatings: req.DishRatings,
	}
	if err := db.Create(&review).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ALREADY_REVIEWED",
					"message": "You have already reviewed this restaurant",
				},
			})
			return
		}
		log.Printf("Failed to create review: %v", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    review,
	})
}

// UpdateReview handles PUT /api/v1/reviews/:id - customers can only update
// their own reviews; anyone else's review reads as not found
func UpdateReview(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondReviewNotFound(c)
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
			},
		})
		return
	}

	db := config.GetDB()
	var review models.Review
	if err := db.Where("id = ? AND customer_id = ?", uint(reviewID), customer.ID).First(&review).Error; err != nil {
		respondReviewNotFound(c)
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.DishRatings != nil {
		review.DishRatings = *req.DishRatings
	}
	if err := db.Save(&review).Error; err != nil {
		log.Printf("Failed to update review %d: %v", review.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    review,
	})
}

// DeleteReview handles DELETE /api/v1/reviews/:id
func DeleteReview(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondReviewNotFound(c)
		return
	}

	db := config.GetDB()
	var review models.Review
	if err := db.Where("id = ? AND customer_id = ?", uint(reviewID), customer.ID).First(&review).Error; err != nil {
		respondReviewNotFound(c)
		return
	}

	if err := db.Delete(&review).Error; err != nil {
		log.Printf("Failed to delete review %d: %v", review.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Review deleted",
		},
	})
}

// pagination reads page/limit query params with the defaults the mobile app
// uses
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func respondRestaurantNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "RESTAURANT_NOT_FOUND",
			"message": "Restaurant not found",
		},
	})
}

func respondReviewNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "REVIEW_NOT_FOUND",
			"message": "Review not found",
		},
	})
}
