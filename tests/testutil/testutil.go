package testutil

import (
	"os"
	"testing"

	"github.com/bigboy-app/bigboy-api/config"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// TestConfig returns a complete configuration with fixed secrets for tests.
// Install it with config.SetConfig before exercising anything that issues or
// verifies tokens.
func TestConfig() *config.Config {
	return &config.Config{
		DatabaseURL:               "sqlite::memory:",
		Port:                      "4000",
		GoEnv:                     "test",
		GuestAccessTokenSecret:    "test-guest-access-secret",
		GuestRefreshTokenSecret:   "test-guest-refresh-secret",
		GuestAccessTokenTTL:       900,
		GuestRefreshTokenTTL:      43200,
		AccountAccessTokenSecret:  "test-account-access-secret",
		AccountRefreshTokenSecret: "test-account-refresh-secret",
		AccountAccessTokenTTL:     3600,
		AccountRefreshTokenTTL:    604800,
		GuestAppURL:               "https://app.bigboy.test",
	}
}
