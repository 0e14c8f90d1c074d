package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/bigboy-app/bigboy-api/models"
)

func intPtr(v int) *int { return &v }

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

func loginTestGuest(t *testing.T, db *gorm.DB) *models.Guest {
	seedTable(t, db, 1, 5, "qr-abc")
	session, err := GuestLogin(db, "qr-abc", "An")
	if err != nil {
		t.Fatalf("Failed to log in test guest: %v", err)
	}
	return session.Guest
}

func TestPlaceOrders_SnapshotsAndCreates(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	notifier := NewMockNotifier()
	notifier.SetAsMockForTesting()
	guest := loginTestGuest(t, db)
	pho := seedDish(t, db, 1, "Phở bò", 50000, models.DishAvailable)
	seedDish(t, db, 1, "Cà phê sữa", 25000, models.DishAvailable)

	result, err := PlaceOrders(db, guest, []OrderLine{
		{DishID: pho.ID, Quantity: intPtr(3), Notes: "ít hành"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalOrders)
	assert.Len(t, result.OrderIDs, 1)

	var order models.Order
	assert.NoError(t, db.Preload("DishSnapshot").First(&order, result.OrderIDs[0]).Error)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, "ít hành", order.Notes)
	assert.Equal(t, guest.ID, order.GuestID)
	assert.Equal(t, guest.TenantID, order.TenantID)
	assert.Equal(t, guest.TableNumber, order.TableNumber)
	assert.Equal(t, "Phở bò", order.DishSnapshot.Name)
	assert.Equal(t, 50000, order.DishSnapshot.Price)
	assert.Equal(t, pho.ID, order.DishSnapshot.DishID)

	events := notifier.EventsNamed(EventNewOrders)
	assert.Len(t, events, 1)
	payload := events[0].Payload.(map[string]interface{})
	assert.Equal(t, 1, payload["totalOrders"])
}

func TestPlaceOrders_QuantityDefaultsToOne(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	guest := loginTestGuest(t, db)
	dish := seedDish(t, db, 1, "Phở bò", 50000, models.DishAvailable)

	result, err := PlaceOrders(db, guest, []OrderLine{{DishID: dish.ID}})
	assert.NoError(t, err)

	var order models.Order
	assert.NoError(t, db.First(&order, result.OrderIDs[0]).Error)
	assert.Equal(t, 1, order.Quantity)
}

func TestPlaceOrders_SkipsInvalidLines(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	guest := loginTestGuest(t, db)
	pho := seedDish(t, db, 1, "Phở bò", 50000, models.DishAvailable)
	soldOut := seedDish(t, db, 1, "Bún chả", 45000, models.DishUnavailable)

	result, err := PlaceOrders(db, guest, []OrderLine{
		{DishID: pho.ID, Quantity: intPtr(1)},
		{DishID: 9999, Quantity: intPtr(1)},       // no such dish
		{DishID: soldOut.ID, Quantity: intPtr(1)}, // unavailable
		{DishID: pho.ID, Quantity: intPtr(0)},     // explicit zero quantity
		{DishID: pho.ID, Quantity: intPtr(-2)},    // negative quantity
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalOrders)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
}

func TestPlaceOrders_AllLinesInvalidRollsBack(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	notifier := NewMockNotifier()
	notifier.SetAsMockForTesting()
	guest := loginTestGuest(t, db)
	soldOut := seedDish(t, db, 1, "Bún chả", 45000, models.DishUnavailable)

	_, err := PlaceOrders(db, guest, []OrderLine{
		{DishID: 9999, Quantity: intPtr(2)},
		{DishID: soldOut.ID, Quantity: intPtr(1)},
	})
	assert.ErrorIs(t, err, ErrEmptySelection)

	// Nothing committed: no orders, no stray snapshots, no notification
	var orderCount, snapshotCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.DishSnapshot{}).Count(&snapshotCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), snapshotCount)
	assert.Empty(t, notifier.Events())
}

func TestPlaceOrders_EmptyBatch(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	guest := loginTestGuest(t, db)

	_, err := PlaceOrders(db, guest, nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestPlaceOrders_SnapshotSurvivesPriceChange(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	guest := loginTestGuest(t, db)
	dish := seedDish(t, db, 1, "Phở bò", 50000, models.DishAvailable)

	result, err := PlaceOrders(db, guest, []OrderLine{
		{DishID: dish.ID, Quantity: intPtr(3)},
	})
	assert.NoError(t, err)

	// Reprice the live dish after the order was placed
	assert.NoError(t, db.Model(dish).Update("price", 99999).Error)

	view, err := GetOrderDetail(db, guest, result.OrderIDs[0])
	assert.NoError(t, err)
	assert.Equal(t, 50000, view.Dish.Price)
	assert.Equal(t, 150000, view.TotalPrice)
}

func TestListOrders(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	guest := loginTestGuest(t, db)
	pho := seedDish(t, db, 1, "Phở bò", 50000, models.DishAvailable)
	coffee := seedDish(t, db, 1, "Cà phê sữa", 25000, models.DishAvailable)

	result, err := PlaceOrders(db, guest, []OrderLine{
		{DishID: pho.ID, Quantity: intPtr(2)},
		{DishID: coffee.ID, Quantity: intPtr(1)},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalOrders)

	// Mark one order served so the status filter has something to bite on
	assert.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", result.OrderIDs[0]).
		Update("status", models.OrderServed).Error)

	t.Run("no filter returns all with snapshot join", func(t *testing.T) {
		views, err := ListOrders(db, guest, "")
		assert.NoError(t, err)
		assert.Len(t, views, 2)
		for _, view := range views {
			assert.NotEmpty(t, view.Dish.Name)
			assert.Equal(t, view.Dish.Price*view.Quantity, view.TotalPrice)
		}
	})

	t.Run("status filter applies", func(t *testing.T) {
		views, err := ListOrders(db, guest, models.OrderServed)
		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Equal(t, models.OrderServed, views[0].Status)
	})

	t.Run("unrecognized filter is ignored", func(t *testing.T) {
		views, err := ListOrders(db, guest, "SHIPPED")
		assert.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("other guests see nothing", func(t *testing.T) {
		other := &models.Guest{ID: 999, TenantID: 1, TableNumber: 9}
		views, err := ListOrders(db, other, "")
		assert.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestGetOrderDetail_ScopedToGuest(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	guest := loginTestGuest(t, db)
	dish := seedDish(t, db, 1, "Phở bò", 50000, models.DishAvailable)

	result, err := PlaceOrders(db, guest, []OrderLine{{DishID: dish.ID}})
	assert.NoError(t, err)

	// Another guest asking for the same id gets not-found, not forbidden
	other := &models.Guest{ID: 999, TenantID: 1, TableNumber: 9}
	_, err = GetOrderDetail(db, other, result.OrderIDs[0])
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = GetOrderDetail(db, guest, 424242)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRequestPayment(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	notifier := NewMockNotifier()
	notifier.SetAsMockForTesting()
	guest := loginTestGuest(t, db)
	pho := seedDish(t, db, 1, "Phở bò", 50000, models.DishAvailable)
	coffee := seedDish(t, db, 1, "Cà phê sữa", 25000, models.DishAvailable)

	result, err := PlaceOrders(db, guest, []OrderLine{
		{DishID: pho.ID, Quantity: intPtr(2)},    // 100000
		{DishID: coffee.ID, Quantity: intPtr(1)}, // 25000
	})
	assert.NoError(t, err)

	// A settled order is excluded from the aggregate
	assert.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", result.OrderIDs[1]).
		Update("status", models.OrderPaid).Error)

	summary, err := RequestPayment(db, guest)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.OrderCount)
	assert.Equal(t, 100000, summary.TotalAmount)

	// Statuses are untouched; requesting payment again gives the same answer
	var pending models.Order
	assert.NoError(t, db.First(&pending, result.OrderIDs[0]).Error)
	assert.Equal(t, models.OrderPending, pending.Status)

	again, err := RequestPayment(db, guest)
	assert.NoError(t, err)
	assert.Equal(t, summary, again)

	events := notifier.EventsNamed(EventPaymentRequested)
	assert.Len(t, events, 2)
}

func TestRequestPayment_NothingToPay(t *testing.T) {
	setupTestConfig()
	db := setupTestDB(t)
	NewMockNotifier().SetAsMockForTesting()
	guest := loginTestGuest(t, db)

	_, err := RequestPayment(db, guest)
	assert.ErrorIs(t, err, ErrNothingToPay)
}
