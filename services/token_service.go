package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/bigboy-app/bigboy-api/config"
)

// PrincipalKind is the category of identity a token represents. It selects
// which secret and lifetime apply.
type PrincipalKind string

const (
	// PrincipalGuest is an ephemeral table-scoped diner session
	PrincipalGuest PrincipalKind = "guest"
	// PrincipalAccount is a password-backed customer or staff identity
	PrincipalAccount PrincipalKind = "account"
)

var (
	// ErrTokenExpired means the token verified but its expiry has passed
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed means the token could not be parsed or its
	// signature did not match
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenClaims carries the identity claims embedded in issued tokens.
// Guest tokens set GuestID (and TableNumber on access tokens); account
// tokens set Subject/Role/CustomerID.
type TokenClaims struct {
	GuestID     uint   `json:"guestId,omitempty"`
	TableNumber int    `json:"tableNumber,omitempty"`
	CustomerID  uint   `json:"customerId,omitempty"`
	AccountID   uint   `json:"accountId,omitempty"`
	Role        string `json:"role,omitempty"`
	jwt.StandardClaims
}

// IssueAccessToken signs an access token for the given principal kind.
// TTL and secret are drawn from configuration keyed by kind.
func IssueAccessToken(claims TokenClaims, kind PrincipalKind) (string, error) {
	secret, ttl, err := accessParams(kind)
	if err != nil {
		return "", err
	}
	return sign(claims, secret, ttl)
}

// IssueRefreshToken signs a refresh token for the given principal kind.
// Refresh tokens use a secret distinct from the access-token secret.
func IssueRefreshToken(claims TokenClaims, kind PrincipalKind) (string, error) {
	secret, ttl, err := refreshParams(kind)
	if err != nil {
		return "", err
	}
	return sign(claims, secret, ttl)
}

// VerifyAccessToken checks signature and expiry against the kind's
// access-token secret. It returns ErrTokenExpired for a well-signed but
// stale token and ErrTokenMalformed for everything else.
func VerifyAccessToken(tokenString string, kind PrincipalKind) (*TokenClaims, error) {
	secret, _, err := accessParams(kind)
	if err != nil {
		return nil, err
	}
	return parse(tokenString, secret)
}

// VerifyRefreshToken checks signature and expiry against the kind's
// refresh-token secret.
func VerifyRefreshToken(tokenString string, kind PrincipalKind) (*TokenClaims, error) {
	secret, _, err := refreshParams(kind)
	if err != nil {
		return nil, err
	}
	return parse(tokenString, secret)
}

// AccessTokenTTL returns the access-token lifetime in seconds for a kind
func AccessTokenTTL(kind PrincipalKind) int {
	_, ttl, err := accessParams(kind)
	if err != nil {
		return 0
	}
	return ttl
}

// RefreshTokenTTL returns the refresh-token lifetime in seconds for a kind
func RefreshTokenTTL(kind PrincipalKind) int {
	_, ttl, err := refreshParams(kind)
	if err != nil {
		return 0
	}
	return ttl
}

func accessParams(kind PrincipalKind) (string, int, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		return "", 0, fmt.Errorf("configuration not loaded")
	}
	switch kind {
	case PrincipalGuest:
		return cfg.GuestAccessTokenSecret, cfg.GuestAccessTokenTTL, nil
	case PrincipalAccount:
		return cfg.AccountAccessTokenSecret, cfg.AccountAccessTokenTTL, nil
	}
	return "", 0, fmt.Errorf("unknown principal kind: %q", kind)
}

func refreshParams(kind PrincipalKind) (string, int, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		return "", 0, fmt.Errorf("configuration not loaded")
	}
	switch kind {
	case PrincipalGuest:
		return cfg.GuestRefreshTokenSecret, cfg.GuestRefreshTokenTTL, nil
	case PrincipalAccount:
		return cfg.AccountRefreshTokenSecret, cfg.AccountRefreshTokenTTL, nil
	}
	return "", 0, fmt.Errorf("unknown principal kind: %q", kind)
}

func sign(claims TokenClaims, secret string, ttlSeconds int) (string, error) {
	now := time.Now()
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(time.Duration(ttlSeconds) * time.Second).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parse(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
