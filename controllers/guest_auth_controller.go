package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/middleware"
	"github.com/bigboy-app/bigboy-api/services"
)

// GuestLoginRequest represents the request body for a guest QR login
type GuestLoginRequest struct {
	TableToken string `json:"table_token" binding:"required"`
	Name       string `json:"name"`
}

// RefreshTokenRequest represents the request body for refreshing a guest
// access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GuestLogin handles POST /api/v1/auth/login - starts a guest session from a
// scanned table QR token
func GuestLogin(c *gin.Context) {
	var req GuestLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "table_token is required",
			},
		})
		return
	}

	session, err := services.GuestLogin(config.GetDB(), req.TableToken, req.Name)
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
		log.Printf("Guest login failed: %v", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"guest": gin.H{
				"id":          session.Guest.ID,
				"name":        session.Guest.Name,
				"tableNumber": session.Guest.TableNumber,
			},
			"accessToken":  session.AccessToken,
			"refreshToken": session.RefreshToken,
			"expiresIn":    session.ExpiresIn,
		},
	})
}

// RefreshGuestToken handles POST /api/v1/auth/refresh-token - exchanges a
// live refresh token for a fresh access token
func RefreshGuestToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "refreshToken is required",
			},
		})
		return
	}

	accessToken, expiresIn, err := services.RefreshGuestToken(config.GetDB(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrAuthInvalid) || errors.Is(err, services.ErrAuthExpired) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Please log in again",
				},
			})
			return
		}
		log.Printf("Guest token refresh failed: %v", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"accessToken": accessToken,
			"expiresIn":   expiresIn,
		},
	})
}

// GuestLogout handles POST /api/v1/auth/logout - tears down the guest
// session
func GuestLogout(c *gin.Context) {
	guest, err := middleware.GetGuest(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Please log in again",
			},
		})
		return
	}

	if err := services.GuestLogout(config.GetDB(), guest); err != nil {
		log.Printf("Guest logout failed for guest %d: %v", guest.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Logged out",
		},
	})
}

// respondInternalError returns the fixed generic 500 envelope. Details are
// logged server-side only and never echoed to the client.
func respondInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Something went wrong, please try again later",
		},
	})
}
