package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/models"
	"github.com/bigboy-app/bigboy-api/services"
)

// AccountLoginRequest represents the request body for staff login
type AccountLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AccountLogin handles POST /api/v1/accounts/login - staff and admin login
func AccountLogin(c *gin.Context) {
	var req AccountLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Email and password are required",
			},
		})
		return
	}

	db := config.GetDB()
	var account models.Account
	if err := db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		rejectBadCredentials(c)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		rejectBadCredentials(c)
		return
	}

	claims := services.TokenClaims{
		AccountID: account.ID,
		Role:      account.Role,
	}
	accessToken, err := services.IssueAccessToken(claims, services.PrincipalAccount)
	if err != nil {
		log.Printf("Failed to issue access token for account %d: %v", account.ID, err)
		respondInternalError(c)
		return
	}
	refreshToken, err := services.IssueRefreshToken(claims, services.PrincipalAccount)
	if err != nil {
		log.Printf("Failed to issue refresh token for account %d: %v", account.ID, err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"token_type":    "bearer",
			"expires_in":    services.AccessTokenTTL(services.PrincipalAccount),
			"account": gin.H{
				"id":        account.ID,
				"name":      account.Name,
				"email":     account.Email,
				"role":      account.Role,
				"tenant_id": account.TenantID,
			},
		},
	})
}
