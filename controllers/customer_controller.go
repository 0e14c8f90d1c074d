package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/middleware"
	"github.com/bigboy-app/bigboy-api/models"
	"github.com/bigboy-app/bigboy-api/services"
)

// RegisterCustomerRequest represents the request body for customer signup
type RegisterCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// CustomerLoginRequest represents the request body for customer login
type CustomerLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterCustomer handles POST /api/v1/customers/register
func RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		respondInternalError(c)
		return
	}

	customer := models.Customer{
		Name:           req.Name,
		Email:          req.Email,
		Password:       string(hashed),
		Phone:          req.Phone,
		MembershipTier: models.TierIron,
	}

	db := config.GetDB()
	if err := db.Create(&customer).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMAIL_EXISTS",
					"message": "Email already registered",
				},
			})
			return
		}
		log.Printf("Failed to create customer: %v", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":              customer.ID,
			"name":            customer.Name,
			"email":           customer.Email,
			"membership_tier": customer.MembershipTier,
		},
	})
}

// CustomerLogin handles POST /api/v1/customers/login
func CustomerLogin(c *gin.Context) {
	var req CustomerLoginRequest
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
	var customer models.Customer
	if err := db.Where("email = ?", req.Email).First(&customer).Error; err != nil {
		rejectBadCredentials(c)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.Password)); err != nil {
		rejectBadCredentials(c)
		return
	}

	claims := services.TokenClaims{
		CustomerID: customer.ID,
		Role:       "Customer",
	}
	accessToken, err := services.IssueAccessToken(claims, services.PrincipalAccount)
	if err != nil {
		log.Printf("Failed to issue access token for customer %d: %v", customer.ID, err)
		respondInternalError(c)
		return
	}
	refreshToken, err := services.IssueRefreshToken(claims, services.PrincipalAccount)
	if err != nil {
		log.Printf("Failed to issue refresh token for customer %d: %v", customer.ID, err)
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
			"customer": gin.H{
				"id":              customer.ID,
				"name":            customer.Name,
				"email":           customer.Email,
				"membership_tier": customer.MembershipTier,
				"total_spending":  customer.TotalSpending,
				"points":          customer.Points,
			},
		},
	})
}

// GetCustomerProfile handles GET /api/v1/customers/me
func GetCustomerProfile(c *gin.Context) {
	customer, err := middleware.GetCustomer(c)
	if err != nil {
		rejectGuestUnauthorized(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":              customer.ID,
			"name":            customer.Name,
			"email":           customer.Email,
			"phone":           customer.Phone,
			"avatar":          customer.Avatar,
			"membership_tier": customer.MembershipTier,
			"total_spending":  customer.TotalSpending,
			"points":          customer.Points,
		},
	})
}

func rejectBadCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "BAD_CREDENTIALS",
			"message": "Incorrect email or password",
		},
	})
}
