package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bigboy-app/bigboy-api/models"
)

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
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
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

func TestGuestLogin_CreatesGuestAndSession(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	notifier := NewMockNotifier()
	notifier.SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-abc")

	session, err := GuestLogin(db, "qr-abc", "An")
	assert.NoError(t, err)
	assert.NotNil(t, session.Guest)
	assert.Equal(t, "An", session.Guest.Name)
	assert.Equal(t, uint(1), session.Guest.TenantID)
	assert.Equal(t, 5, session.Guest.TableNumber)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, 900, session.ExpiresIn)

	// Access token carries the guest identity and table number
	claims, err := VerifyAccessToken(session.AccessToken, PrincipalGuest)
	assert.NoError(t, err)
	assert.Equal(t, session.Guest.ID, claims.GuestID)
	assert.Equal(t, 5, claims.TableNumber)

	// Refresh token is persisted on the row
	var stored models.Guest
	assert.NoError(t, db.First(&stored, session.Guest.ID).Error)
	assert.NotNil(t, stored.RefreshToken)
	assert.Equal(t, session.RefreshToken, *stored.RefreshToken)
	assert.NotNil(t, stored.RefreshTokenExpiresAt)

	events := notifier.EventsNamed(EventGuestJoined)
	assert.Len(t, events, 1)
	assert.Equal(t, uint(1), events[0].TenantID)
}

func TestGuestLogin_DefaultsName(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-abc")

	session, err := GuestLogin(db, "qr-abc", "")
	assert.NoError(t, err)
	assert.Equal(t, DefaultGuestName, session.Guest.Name)
}

func TestGuestLogin_ReusesMostRecentGuest(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-abc")

	first, err := GuestLogin(db, "qr-abc", "An")
	assert.NoError(t, err)
	second, err := GuestLogin(db, "qr-abc", "Binh")
	assert.NoError(t, err)

	// Same row revived, name overwritten, no duplicate created
	assert.Equal(t, first.Guest.ID, second.Guest.ID)
	assert.Equal(t, "Binh", second.Guest.Name)

	var count int64
	db.Model(&models.Guest{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGuestLogin_SameTableNumberDifferentTenant(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-tenant1")
	seedTable(t, db, 2, 5, "qr-tenant2")

	first, err := GuestLogin(db, "qr-tenant1", "An")
	assert.NoError(t, err)
	second, err := GuestLogin(db, "qr-tenant2", "Chi")
	assert.NoError(t, err)

	// Table number alone does not identify a table across tenants
	assert.NotEqual(t, first.Guest.ID, second.Guest.ID)
	assert.Equal(t, uint(2), second.Guest.TenantID)
}

func TestGuestLogin_UnknownTokenCreatesNothing(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	notifier := NewMockNotifier()
	notifier.SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-abc")

	_, err := GuestLogin(db, "qr-bogus", "An")
	assert.ErrorIs(t, err, ErrTableNotFound)

	var count int64
	db.Model(&models.Guest{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Empty(t, notifier.Events())
}

func TestGuestLogin_RotatesRefreshToken(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-abc")

	first, err := GuestLogin(db, "qr-abc", "An")
	assert.NoError(t, err)

	// jwt expiry has second resolution; make sure the rotated token differs
	time.Sleep(1100 * time.Millisecond)

	second, err := GuestLogin(db, "qr-abc", "An")
	assert.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The superseded token no longer matches the stored value even though
	// its signature still verifies
	_, err = VerifyRefreshToken(first.RefreshToken, PrincipalGuest)
	assert.NoError(t, err)
	_, _, err = RefreshGuestToken(db, first.RefreshToken)
	assert.ErrorIs(t, err, ErrAuthInvalid)

	// The current token works
	accessToken, expiresIn, err := RefreshGuestToken(db, second.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.Equal(t, 900, expiresIn)
}

func TestRefreshGuestToken_Errors(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-abc")

	session, err := GuestLogin(db, "qr-abc", "An")
	assert.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := RefreshGuestToken(db, "not-a-token")
		assert.ErrorIs(t, err, ErrAuthInvalid)
	})

	t.Run("stored expiry passed", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		err := db.Model(session.Guest).Update("refresh_token_expires_at", past).Error
		assert.NoError(t, err)

		_, _, err = RefreshGuestToken(db, session.RefreshToken)
		assert.ErrorIs(t, err, ErrAuthExpired)
	})
}

func TestGuestLogout(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-abc")

	session, err := GuestLogin(db, "qr-abc", "An")
	assert.NoError(t, err)

	assert.NoError(t, GuestLogout(db, session.Guest))

	var stored models.Guest
	assert.NoError(t, db.First(&stored, session.Guest.ID).Error)
	assert.Nil(t, stored.RefreshToken)
	assert.Nil(t, stored.RefreshTokenExpiresAt)

	// Refresh after logout fails
	_, _, err = RefreshGuestToken(db, session.RefreshToken)
	assert.ErrorIs(t, err, ErrAuthInvalid)

	// Idempotent
	assert.NoError(t, GuestLogout(db, session.Guest))
}

func TestAuthenticateGuest(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	seedTable(t, db, 1, 5, "qr-abc")

	session, err := GuestLogin(db, "qr-abc", "An")
	assert.NoError(t, err)

	t.Run("valid token loads guest", func(t *testing.T) {
		guest, err := AuthenticateGuest(db, session.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, session.Guest.ID, guest.ID)
		assert.Equal(t, "An", guest.Name)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := AuthenticateGuest(db, "garbage")
		assert.ErrorIs(t, err, ErrAuthInvalid)
	})

	t.Run("token for deleted guest", func(t *testing.T) {
		assert.NoError(t, db.Delete(&models.Guest{}, session.Guest.ID).Error)
		_, err := AuthenticateGuest(db, session.AccessToken)
		assert.ErrorIs(t, err, ErrAuthExpired)
	})
}
