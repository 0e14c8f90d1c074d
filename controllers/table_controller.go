package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/models"
	"github.com/bigboy-app/bigboy-api/services"
)

// CreateTableRequest represents the request body for provisioning a table
type CreateTableRequest struct {
	TenantID uint `json:"tenant_id" binding:"required"`
	Number   int  `json:"number" binding:"required,gt=0"`
}

// GetTableByID handles GET /api/v1/tables/:id
func GetTableByID(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondTableNotFound(c)
		return
	}

	table, err := services.ResolveTableByID(config.GetDB(), uint(tableID))
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			respondTableNotFound(c)
			return
		}
		log.Printf("Failed to load table %d: %v", tableID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tableView(table),
	})
}

// GetTableByToken handles GET /api/v1/tables/token/:token - pre-login QR
// check used by the guest app before it asks for a name
func GetTableByToken(c *gin.Context) {
	table, err := services.ResolveTableByToken(config.GetDB(), c.Param("token"))
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_QR",
					"message": "QR code does not match any table",
				},
			})
			return
		}
		log.Printf("Failed to resolve table token: %v", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tableView(table),
	})
}

// GetTableQRCode handles GET /api/v1/tables/:id/qrcode - renders the table's
// QR code as a PNG for printing
func GetTableQRCode(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondTableNotFound(c)
		return
	}

	table, err := services.ResolveTableByID(config.GetDB(), uint(tableID))
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			respondTableNotFound(c)
			return
		}
		log.Printf("Failed to load table %d: %v", tableID, err)
		respondInternalError(c)
		return
	}

	generator := services.DefaultQRGenerator{BaseURL: config.GetConfig().GuestAppURL}
	png, err := generator.Generate(table.Token)
	if err != nil {
		log.Printf("Failed to render QR for table %d: %v", table.ID, err)
		respondInternalError(c)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}

// CreateTable handles POST /api/v1/admin/tables - provisions a table with a
// fresh opaque QR token
func CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "tenant_id and a positive table number are required",
			},
		})
		return
	}

	table := models.Table{
		TenantID: req.TenantID,
		Number:   req.Number,
		Token:    uuid.NewString(),
		Status:   models.TableAvailable,
	}
	if err := config.GetDB().Create(&table).Error; err != nil {
		log.Printf("Failed to create table %d for tenant %d: %v", req.Number, req.TenantID, err)
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TABLE_EXISTS",
				"message": "This tenant already has a table with that number",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    table,
	})
}

func tableView(table *models.Table) gin.H {
	return gin.H{
		"id":       table.ID,
		"number":   table.Number,
		"status":   table.Status,
		"tenantId": table.TenantID,
	}
}

func respondTableNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "TABLE_NOT_FOUND",
			"message": "Table not found",
		},
	})
}
