package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/models"
	"github.com/bigboy-app/bigboy-api/services"
)

// Context keys for authenticated principals
const (
	guestContextKey    = "guest"
	customerContextKey = "customer"
	accountContextKey  = "account"
)

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// RequireGuest gates a route on a valid guest access token. The handler
// chain never re-reads the Authorization header; the authenticated Guest is
// placed in the context and retrieved with GetGuest.
//
// Missing, malformed and expired tokens all answer 401 with the same code so
// clients learn nothing about which check failed.
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			rejectUnauthorized(c)
			return
		}

		guest, err := services.AuthenticateGuest(config.GetDB(), token)
		if err != nil {
			rejectUnauthorized(c)
			return
		}

		c.Set(guestContextKey, guest)
		c.Next()
	}
}

// GetGuest extracts the authenticated guest from the Gin context
func GetGuest(c *gin.Context) (*models.Guest, error) {
	value, exists := c.Get(guestContextKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_GUEST", Message: "Guest not found in context"}
	}

	guest, ok := value.(*models.Guest)
	if !ok {
		return nil, &AuthError{Code: "INVALID_GUEST", Message: "Guest is not in the expected format"}
	}

	return guest, nil
}

// RequireCustomer gates a route on a valid customer access token
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			rejectUnauthorized(c)
			return
		}

		claims, err := services.VerifyAccessToken(token, services.PrincipalAccount)
		if err != nil || claims.Role != "Customer" || claims.CustomerID == 0 {
			rejectUnauthorized(c)
			return
		}

		var customer models.Customer
		if err := config.GetDB().First(&customer, claims.CustomerID).Error; err != nil {
			rejectUnauthorized(c)
			return
		}

		c.Set(customerContextKey, &customer)
		c.Next()
	}
}

// GetCustomer extracts the authenticated customer from the Gin context
func GetCustomer(c *gin.Context) (*models.Customer, error) {
	value, exists := c.Get(customerContextKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CUSTOMER", Message: "Customer not found in context"}
	}

	customer, ok := value.(*models.Customer)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CUSTOMER", Message: "Customer is not in the expected format"}
	}

	return customer, nil
}

// RequireAdmin gates a route on a platform admin account token
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			rejectUnauthorized(c)
			return
		}

		claims, err := services.VerifyAccessToken(token, services.PrincipalAccount)
		if err != nil || claims.AccountID == 0 {
			rejectUnauthorized(c)
			return
		}

		var account models.Account
		if err := config.GetDB().First(&account, claims.AccountID).Error; err != nil {
			rejectUnauthorized(c)
			return
		}

		if account.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin access required",
				},
			})
			c.Abort()
			return
		}

		c.Set(accountContextKey, &account)
		c.Next()
	}
}

// GetAccount extracts the authenticated staff account from the Gin context
func GetAccount(c *gin.Context) (*models.Account, error) {
	value, exists := c.Get(accountContextKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_ACCOUNT", Message: "Account not found in context"}
	}

	account, ok := value.(*models.Account)
	if !ok {
		return nil, &AuthError{Code: "INVALID_ACCOUNT", Message: "Account is not in the expected format"}
	}

	return account, nil
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func rejectUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Please log in again",
		},
	})
	c.Abort()
}
