package testutil

import (
	"testing"

	"github.com/bigboy-app/bigboy-api/services"
)

// IssueGuestAccessToken issues a real guest access token signed with the test
// secrets from TestConfig
func IssueGuestAccessToken(t *testing.T, guestID uint, tableNumber int) string {
	t.Helper()

	token, err := services.IssueAccessToken(services.TokenClaims{
		GuestID:     guestID,
		TableNumber: tableNumber,
	}, services.PrincipalGuest)
	if err != nil {
		t.Fatalf("Failed to issue guest access token: %v", err)
	}
	return token
}

// IssueCustomerAccessToken issues a real customer access token
func IssueCustomerAccessToken(t *testing.T, customerID uint) string {
	t.Helper()

	token, err := services.IssueAccessToken(services.TokenClaims{
		CustomerID: customerID,
		Role:       "Customer",
	}, services.PrincipalAccount)
	if err != nil {
		t.Fatalf("Failed to issue customer access token: %v", err)
	}
	return token
}

// IssueAccountAccessToken issues a real staff account access token
func IssueAccountAccessToken(t *testing.T, accountID uint, role string) string {
	t.Helper()

	token, err := services.IssueAccessToken(services.TokenClaims{
		AccountID: accountID,
		Role:      role,
	}, services.PrincipalAccount)
	if err != nil {
		t.Fatalf("Failed to issue account access token: %v", err)
	}
	return token
}

// BearerHeader formats a token as an Authorization header value
func BearerHeader(token string) string {
	return "Bearer " + token
}
