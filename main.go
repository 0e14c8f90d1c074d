package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bigboy-app/bigboy-api/config"
	"github.com/bigboy-app/bigboy-api/controllers"
	"github.com/bigboy-app/bigboy-api/middleware"
	"github.com/bigboy-app/bigboy-api/models"
	"github.com/bigboy-app/bigboy-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting BigBoy API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := migrateModels(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed the platform admin account
	if err := ensureAdminAccount(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Wire the tenant event notifier
	if cfg.RedisAddr != "" {
		services.SetNotifier(services.NewRedisNotifier(cfg.RedisAddr, cfg.RedisPassword))
		log.Printf("Tenant notifications publishing to Redis at %s", cfg.RedisAddr)
	} else {
		log.Println("REDIS_ADDR not set, tenant notifications disabled")
	}

	// Wire dish image storage
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		log.Printf("Dish images stored in S3 bucket %s", cfg.AWSS3Bucket)
	} else {
		log.Println("AWS_S3_BUCKET not set, dish image uploads disabled")
	}

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// migrateModels runs gorm auto-migration for every entity
func migrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
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
}

// ensureAdminAccount creates the default platform admin if it doesn't exist
func ensureAdminAccount(db *gorm.DB, cfg *config.Config) error {
	if cfg.InitialAdminPassword == "" {
		log.Println("INITIAL_PASSWORD_OWNER not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.Account{}).Where("email = ?", cfg.InitialAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Admin account already exists: %s", cfg.InitialAdminEmail)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Account{
		Name:     "Admin",
		Email:    cfg.InitialAdminEmail,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		TenantID: nil, // platform admins belong to no tenant
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Created default admin account: %s", cfg.InitialAdminEmail)
	return nil
}

// setupRouter builds the Gin engine with CORS and all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "X-Requested-With", "X-Tenant-ID"},
		ExposeHeaders:   []string{"Content-Type", "Authorization"},
		MaxAge:          3600,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Guest session
		v1.POST("/auth/login", controllers.GuestLogin)
		v1.POST("/auth/refresh-token", controllers.RefreshGuestToken)
		v1.POST("/auth/logout", middleware.RequireGuest(), controllers.GuestLogout)

		// Menu browsing (public)
		v1.GET("/menu", controllers.GetMenu)
		v1.GET("/dishes/:id", controllers.GetDish)

		// Table lookup (public, used before guest login)
		v1.GET("/tables/:id", controllers.GetTableByID)
		v1.GET("/tables/token/:token", controllers.GetTableByToken)
		v1.GET("/tables/:id/qrcode", controllers.GetTableQRCode)

		// Guest ordering
		guest := v1.Group("", middleware.RequireGuest())
		{
			guest.POST("/orders", controllers.PlaceOrders)
			guest.GET("/orders", controllers.ListOrders)
			guest.GET("/orders/:id", controllers.GetOrderDetail)
			guest.POST("/payment/request", controllers.RequestPayment)
		}

		// Customer accounts
		v1.POST("/customers/register", controllers.RegisterCustomer)
		v1.POST("/customers/login", controllers.CustomerLogin)
		v1.GET("/customers/me", middleware.RequireCustomer(), controllers.GetCustomerProfile)

		// Staff accounts
		v1.POST("/accounts/login", controllers.AccountLogin)

		// Membership
		v1.GET("/membership/tiers", controllers.GetMembershipTiers)
		v1.GET("/membership/my-tier", middleware.RequireCustomer(), controllers.GetMyMembership)
		v1.POST("/membership/update-tier", middleware.RequireCustomer(), controllers.UpdateMembershipTier)

		// Reviews
		v1.GET("/restaurants/:id/reviews", controllers.ListReviews)
		v1.POST("/restaurants/:id/reviews", middleware.RequireCustomer(), controllers.CreateReview)
		v1.PUT("/reviews/:id", middleware.RequireCustomer(), controllers.UpdateReview)
		v1.DELETE("/reviews/:id", middleware.RequireCustomer(), controllers.DeleteReview)

		// Admin
		admin := v1.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/restaurants", controllers.ListRestaurants)
			admin.PUT("/restaurants/:id/status", controllers.UpdateRestaurantStatus)
			admin.GET("/users", controllers.ListUsers)
			admin.POST("/tables", controllers.CreateTable)
			admin.POST("/dishes/:id/image", controllers.UploadDishImage)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "BigBoy API is running",
	})
}
