package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL string
	Port        string
	GoEnv       string
	LogLevel    string

	// Token secrets and lifetimes, split by principal kind.
	// Guests (table-scoped diner sessions) and accounts (password-backed
	// staff/customer identities) never share a secret.
	GuestAccessTokenSecret    string
	GuestRefreshTokenSecret   string
	GuestAccessTokenTTL       int // seconds
	GuestRefreshTokenTTL      int // seconds
	AccountAccessTokenSecret  string
	AccountRefreshTokenSecret string
	AccountAccessTokenTTL     int // seconds
	AccountRefreshTokenTTL    int // seconds

	// Redis connection for tenant event notifications
	RedisAddr     string
	RedisPassword string

	// S3 storage for dish images
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Seeded platform admin account
	InitialAdminEmail    string
	InitialAdminPassword string

	// Base URL encoded into table QR codes
	GuestAppURL string
}

var configInstance *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production, environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnv("PORT", "4000"),
		GoEnv:       getEnv("GO_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		GuestAccessTokenSecret:    getEnv("GUEST_ACCESS_TOKEN_SECRET", ""),
		GuestRefreshTokenSecret:   getEnv("GUEST_REFRESH_TOKEN_SECRET", ""),
		GuestAccessTokenTTL:       getEnvInt("GUEST_ACCESS_TOKEN_EXPIRES_IN", 900),
		GuestRefreshTokenTTL:      getEnvInt("GUEST_REFRESH_TOKEN_EXPIRES_IN", 43200),
		AccountAccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		AccountRefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		AccountAccessTokenTTL:     getEnvInt("ACCESS_TOKEN_EXPIRES_IN", 3600),
		AccountRefreshTokenTTL:    getEnvInt("REFRESH_TOKEN_EXPIRES_IN", 604800),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		AWSRegion:          getEnv("AWS_REGION", "ap-southeast-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		InitialAdminEmail:    getEnv("INITIAL_EMAIL_OWNER", "admin@bigboy.vn"),
		InitialAdminPassword: getEnv("INITIAL_PASSWORD_OWNER", ""),

		GuestAppURL: getEnv("GUEST_APP_URL", "http://localhost:3000"),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	configInstance = config
	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.GuestAccessTokenSecret == "" || c.GuestRefreshTokenSecret == "" {
		return fmt.Errorf("GUEST_ACCESS_TOKEN_SECRET and GUEST_REFRESH_TOKEN_SECRET are required")
	}
	if c.AccountAccessTokenSecret == "" || c.AccountRefreshTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	return nil
}

// GetConfig returns the loaded configuration instance
func GetConfig() *Config {
	return configInstance
}

// SetConfig sets the configuration instance (primarily for testing)
func SetConfig(c *Config) {
	configInstance = c
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
