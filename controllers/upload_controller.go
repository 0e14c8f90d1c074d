package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/models"
	"github.com/bigboy-app/bigboy-api/services"
	"github.com/bigboy-app/bigboy-api/utils"
)

// UploadDishImage handles POST /api/v1/admin/dishes/:id/image - stores a
// dish photo in S3 and records its key on the dish. Snapshots taken after
// this point carry the new image; existing snapshots keep the old one.
func UploadDishImage(c *gin.Context) {
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

	db := config.GetDB()
	var dish models.Dish
	if err := db.First(&dish, uint(dishID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISH_NOT_FOUND",
				"message": "Dish not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		code := "INVALID_FILE"
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader)
	if err != nil {
		log.Printf("Failed to upload image for dish %d: %v", dish.ID, err)
		respondInternalError(c)
		return
	}

	oldKey := dish.Image
	if err := db.Model(&dish).Update("image", s3Key).Error; err != nil {
		log.Printf("Failed to record image key for dish %d: %v", dish.ID, err)
		respondInternalError(c)
		return
	}

	// Best-effort cleanup of the replaced photo
	if oldKey != "" {
		if err := s3Service.DeleteFile(oldKey); err != nil {
			log.Printf("Failed to delete old image %s: %v", oldKey, err)
		}
	}

	imageURL, err := s3Service.GetPresignedURL(s3Key)
	if err != nil {
		log.Printf("Failed to presign image URL for dish %d: %v", dish.ID, err)
		imageURL = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"dish_id":   dish.ID,
			"image_key": s3Key,
			"image_url": imageURL,
		},
	})
}
