package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/models"
	"github.com/bigboy-app/bigboy-api/services"
)

func setupTestConfig() {
	config.SetConfig(&config.Config{
		DatabaseURL:               "sqlite::memory:",
		GoEnv:                     "test",
		GuestAccessTokenSecret:    "guest-access-secret",
		GuestRefreshTokenSecret:   "guest-refresh-secret",
		GuestAccessTokenTTL:       900,
		GuestRefreshTokenTTL:      43200,
		AccountAccessTokenSecret:  "account-access-secret",
		AccountRefreshTokenSecret: "account-refresh-secret",
		AccountAccessTokenTTL:     3600,
		AccountRefreshTokenTTL:    604800,
		GuestAppURL:               "https://app.bigboy.test",
	})
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.Table{},
		&models.Guest{},
		&models.Dish{},
		&models.DishSnapshot{},
		&models.Order{},
		&models.Account{},
		&models.Customer{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// performRequest executes a JSON request against the router, optionally with
// a bearer token
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response body %q: %v", w.Body.String(), err)
	}
	return response
}

func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}

func seedTenant(t *testing.T, db *gorm.DB, name string) *models.Tenant {
	tenant := &models.Tenant{
		Name:         name,
		Slug:         name,
		Status:       models.TenantActive,
		Subscription: models.SubscriptionFree,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("Failed to seed tenant: %v", err)
	}
	return tenant
}

func seedTable(t *testing.T, db *gorm.DB, tenantID uint, number int, token string) *models.Table {
	table := &models.Table{
		TenantID: tenantID,
		Number:   number,
		Token:    token,
		Status:   models.TableAvailable,
	}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("Failed to seed table: %v", err)
	}
	return table
}

func seedDish(t *testing.T, db *gorm.DB, tenantID uint, name string, price int, status string) *models.Dish {
	dish := &models.Dish{
		TenantID: tenantID,
		Name:     name,
		Price:    price,
		Category: "Main",
		Status:   status,
	}
	if err := db.Create(dish).Error; err != nil {
		t.Fatalf("Failed to seed dish: %v", err)
	}
	return dish
}

// loginGuest seeds a table and runs a real guest login, returning the session
func loginGuest(t *testing.T, db *gorm.DB, tableToken, name string) *services.GuestSession {
	session, err := services.GuestLogin(db, tableToken, name)
	if err != nil {
		t.Fatalf("Failed to log in test guest: %v", err)
	}
	return session
}

// seedCustomer creates a customer with a bcrypt password and returns it with
// a valid access token
func seedCustomer(t *testing.T, db *gorm.DB, email, password string) (*models.Customer, string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	customer := &models.Customer{
		Name:           "Test Customer",
		Email:          email,
		Password:       string(hashed),
		MembershipTier: models.TierIron,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}

	token, err := services.IssueAccessToken(services.TokenClaims{
		CustomerID: customer.ID,
		Role:       "Customer",
	}, services.PrincipalAccount)
	if err != nil {
		t.Fatalf("Failed to issue customer token: %v", err)
	}
	return customer, token
}

// seedAccount creates a staff account and returns it with a valid access token
func seedAccount(t *testing.T, db *gorm.DB, email, password, role string) (*models.Account, string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	account := &models.Account{
		Name:     "Test Account",
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("Failed to seed account: %v", err)
	}

	token, err := services.IssueAccessToken(services.TokenClaims{
		AccountID: account.ID,
		Role:      account.Role,
	}, services.PrincipalAccount)
	if err != nil {
		t.Fatalf("Failed to issue account token: %v", err)
	}
	return account, token
}

func intPtr(v int) *int { return &v }
