package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/middleware"
	"github.com/bigboy-app/bigboy-api/services"
)

// PlaceOrdersRequest represents the request body for creating an order batch
type PlaceOrdersRequest struct {
	Orders []services.OrderLine `json:"orders" binding:"required"`
}

// PlaceOrders handles POST /api/v1/orders - creates PENDING orders for the
// authenticated guest, one per valid line
func PlaceOrders(c *gin.Context) {
	guest, err := middleware.GetGuest(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	var req PlaceOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Orders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Select at least one dish",
			},
		})
		return
	}

	result, err := services.PlaceOrders(config.GetDB(), guest, req.Orders)
	if err != nil {
		if errors.Is(err, services.ErrEmptySelection) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMPTY_SELECTION",
					"message": "No valid dish selected",
				},
			})
			return
		}
		log.Printf("Failed to place orders for guest %d: %v", guest.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// ListOrders handles GET /api/v1/orders - lists the guest's orders newest
// first, optionally filtered by status
func ListOrders(c *gin.Context) {
	guest, err := middleware.GetGuest(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	views, err := services.ListOrders(config.GetDB(), guest, c.Query("status"))
	if err != nil {
		log.Printf("Failed to list orders for guest %d: %v", guest.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": views,
			"total": len(views),
		},
	})
}

// GetOrderDetail handles GET /api/v1/orders/:id - returns one of the guest's
// orders
func GetOrderDetail(c *gin.Context) {
	guest, err := middleware.GetGuest(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	view, err := services.GetOrderDetail(config.GetDB(), guest, uint(orderID))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		log.Printf("Failed to load order %d for guest %d: %v", orderID, guest.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    view,
	})
}

// RequestPayment handles POST /api/v1/payment/request - aggregates the
// guest's unsettled orders and pings staff
func RequestPayment(c *gin.Context) {
	guest, err := middleware.GetGuest(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	summary, err := services.RequestPayment(config.GetDB(), guest)
	if err != nil {
		if errors.Is(err, services.ErrNothingToPay) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOTHING_TO_PAY",
					"message": "There are no unpaid orders",
				},
			})
			return
		}
		log.Printf("Failed to request payment for guest %d: %v", guest.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

func rejectGuestUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Please log in again",
		},
	})
}
