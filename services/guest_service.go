package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bigboy-app/bigboy-api/models"
)

var (
	// ErrTableNotFound means no table matches the scanned QR token
	ErrTableNotFound = errors.New("table not found")
	// ErrAuthInvalid means the presented credential failed verification or
	// does not match a live session
	ErrAuthInvalid = errors.New("authentication invalid")
	// ErrAuthExpired means the presented credential verified but its
	// session has expired
	ErrAuthExpired = errors.New("authentication expired")
)

// DefaultGuestName is used when a login carries no display name
const DefaultGuestName = "Khách"

// GuestSession is the result of a successful guest login
type GuestSession struct {
	Guest        *models.Guest
	AccessToken  string
	RefreshToken string
	ExpiresIn    int // access-token lifetime in seconds
}

// ResolveTableByToken looks up a table by its opaque QR token. Exact match,
// no normalization; table tokens carry no expiry.
func ResolveTableByToken(db *gorm.DB, token string) (*models.Table, error) {
	var table models.Table
	if err := db.Where("token = ?", token).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

// ResolveTableByID looks up a table by primary key
func ResolveTableByID(db *gorm.DB, id uint) (*models.Table, error) {
	var table models.Table
	if err := db.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

// GuestLogin resolves a table QR token and issues a guest session for it.
//
// At most one active guest session exists per (tenant, table): a scan at a
// table with a previous guest revives the most recent Guest row, overwriting
// its name and rotating its refresh token, instead of creating a duplicate.
// Two concurrent scans at the same table race on the name field and the last
// writer wins; that is acceptable here, nothing correctness-critical hangs
// off the display name.
func GuestLogin(db *gorm.DB, tableToken, name string) (*GuestSession, error) {
	if name == "" {
		name = DefaultGuestName
	}

	session := &GuestSession{}
	err := db.Transaction(func(tx *gorm.DB) error {
		table, err := ResolveTableByToken(tx, tableToken)
		if err != nil {
			return err
		}

		// Reuse the most recent guest for this table, if any
		var guest models.Guest
		err = tx.Where("tenant_id = ? AND table_number = ?", table.TenantID, table.Number).
			Order("created_at DESC").
			First(&guest).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			guest = models.Guest{
				TenantID:    table.TenantID,
				TableNumber: table.Number,
				Name:        name,
			}
			if err := tx.Create(&guest).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			guest.Name = name
		}

		accessToken, err := IssueAccessToken(TokenClaims{
			GuestID:     guest.ID,
			TableNumber: guest.TableNumber,
		}, PrincipalGuest)
		if err != nil {
			return err
		}

		refreshToken, err := IssueRefreshToken(TokenClaims{
			GuestID: guest.ID,
		}, PrincipalGuest)
		if err != nil {
			return err
		}

		// Persist the rotated refresh token; any previously issued refresh
		// token stops matching the stored value and becomes unusable.
		expiresAt := time.Now().Add(time.Duration(RefreshTokenTTL(PrincipalGuest)) * time.Second)
		guest.RefreshToken = &refreshToken
		guest.RefreshTokenExpiresAt = &expiresAt
		if err := tx.Save(&guest).Error; err != nil {
			return err
		}

		session.Guest = &guest
		session.AccessToken = accessToken
		session.RefreshToken = refreshToken
		session.ExpiresIn = AccessTokenTTL(PrincipalGuest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	Notify(session.Guest.TenantID, EventGuestJoined, map[string]interface{}{
		"guestId":     session.Guest.ID,
		"guestName":   session.Guest.Name,
		"tableNumber": session.Guest.TableNumber,
	})

	return session, nil
}

// RefreshGuestToken verifies a guest refresh token and issues a fresh access
// token. The refresh token itself is not rotated here.
//
// A refresh token must match the value currently stored on the Guest row;
// a token whose signature still verifies but that was superseded by a later
// login (or cleared by logout) is invalid.
func RefreshGuestToken(db *gorm.DB, refreshToken string) (accessToken string, expiresIn int, err error) {
	claims, err := VerifyRefreshToken(refreshToken, PrincipalGuest)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return "", 0, ErrAuthExpired
		}
		return "", 0, ErrAuthInvalid
	}

	var guest models.Guest
	err = db.Where("id = ? AND refresh_token = ?", claims.GuestID, refreshToken).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, ErrAuthInvalid
		}
		return "", 0, err
	}

	if guest.RefreshTokenExpiresAt == nil || guest.RefreshTokenExpiresAt.Before(time.Now()) {
		return "", 0, ErrAuthExpired
	}

	accessToken, err = IssueAccessToken(TokenClaims{
		GuestID:     guest.ID,
		TableNumber: guest.TableNumber,
	}, PrincipalGuest)
	if err != nil {
		return "", 0, err
	}
	return accessToken, AccessTokenTTL(PrincipalGuest), nil
}

// GuestLogout tears down a guest session by clearing the stored refresh
// token. Idempotent: logging out twice is harmless.
func GuestLogout(db *gorm.DB, guest *models.Guest) error {
	return db.Model(guest).Updates(map[string]interface{}{
		"refresh_token":            nil,
		"refresh_token_expires_at": nil,
	}).Error
}

// AuthenticateGuest verifies a guest access token and loads the Guest row it
// names. It is the precondition for every guest-scoped operation; callers
// thread the returned Guest into subsequent calls explicitly.
func AuthenticateGuest(db *gorm.DB, accessToken string) (*models.Guest, error) {
	claims, err := VerifyAccessToken(accessToken, PrincipalGuest)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, ErrAuthExpired
		}
		return nil, ErrAuthInvalid
	}
	if claims.GuestID == 0 {
		return nil, ErrAuthInvalid
	}

	var guest models.Guest
	if err := db.First(&guest, claims.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthExpired
		}
		return nil, err
	}
	return &guest, nil
}
