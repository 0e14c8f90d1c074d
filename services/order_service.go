package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bigboy-app/bigboy-api/models"
)

var (
	// ErrEmptySelection means no line in an order batch named a dish that
	// is available to order
	ErrEmptySelection = errors.New("no valid dish selected")
	// ErrNothingToPay means the guest has no unsettled orders
	ErrNothingToPay = errors.New("nothing to pay")
	// ErrOrderNotFound means the order does not exist or is not owned by
	// the requesting guest
	ErrOrderNotFound = errors.New("order not found")
)

// OrderLine is one requested line in an order batch. Quantity is a pointer
// so an omitted quantity (defaults to 1) can be told apart from an explicit
// zero (invalid, line is skipped).
type OrderLine struct {
	DishID   uint   `json:"dish_id"`
	Quantity *int   `json:"quantity"`
	Notes    string `json:"notes"`
}

// PlacedOrders summarizes a committed order batch
type PlacedOrders struct {
	OrderIDs    []uint `json:"orderIds"`
	TotalOrders int    `json:"totalOrders"`
}

// OrderDishView is the snapshot slice of an order view
type OrderDishView struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Image string `json:"image"`
}

// OrderView is one order line joined with its dish snapshot
type OrderView struct {
	ID         uint          `json:"id"`
	Status     string        `json:"status"`
	Quantity   int           `json:"quantity"`
	Notes      string        `json:"notes"`
	CreatedAt  time.Time     `json:"createdAt"`
	Dish       OrderDishView `json:"dish"`
	TotalPrice int           `json:"totalPrice"`
}

// PaymentSummary aggregates a guest's unsettled orders
type PaymentSummary struct {
	OrderCount  int `json:"orderCount"`
	TotalAmount int `json:"totalAmount"`
}

// PlaceOrders creates one PENDING order per valid line, each against a
// freshly frozen snapshot of its dish.
//
// Lines naming a missing or unavailable dish, or carrying a non-positive
// quantity, are skipped silently; partial fulfillment is intended product
// behavior, not an error. Only a batch where every line is skipped fails,
// with ErrEmptySelection, and in that case nothing is committed.
func PlaceOrders(db *gorm.DB, guest *models.Guest, lines []OrderLine) (*PlacedOrders, error) {
	if len(lines) == 0 {
		return nil, ErrEmptySelection
	}

	result := &PlacedOrders{}
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			quantity := 1
			if line.Quantity != nil {
				quantity = *line.Quantity
			}
			if quantity <= 0 {
				continue
			}

			var dish models.Dish
			err := tx.Where("id = ? AND status = ?", line.DishID, models.DishAvailable).First(&dish).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			snapshot := models.DishSnapshot{
				DishID:      dish.ID,
				Name:        dish.Name,
				Price:       dish.Price,
				Description: dish.Description,
				Image:       dish.Image,
				Category:    dish.Category,
				Status:      dish.Status,
			}
			if err := tx.Create(&snapshot).Error; err != nil {
				return err
			}

			order := models.Order{
				TenantID:       guest.TenantID,
				GuestID:        guest.ID,
				TableNumber:    guest.TableNumber,
				DishSnapshotID: snapshot.ID,
				Quantity:       quantity,
				Notes:          line.Notes,
				Status:         models.OrderPending,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			result.OrderIDs = append(result.OrderIDs, order.ID)
		}

		if len(result.OrderIDs) == 0 {
			// Rolls back any snapshots written before we knew the batch
			// was empty
			return ErrEmptySelection
		}
		result.TotalOrders = len(result.OrderIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	Notify(guest.TenantID, EventNewOrders, map[string]interface{}{
		"guestId":     guest.ID,
		"guestName":   guest.Name,
		"tableNumber": guest.TableNumber,
		"totalOrders": result.TotalOrders,
	})

	return result, nil
}

// ListOrders returns the guest's orders newest first, each joined with its
// snapshot. An unrecognized status filter is ignored rather than rejected.
func ListOrders(db *gorm.DB, guest *models.Guest, statusFilter string) ([]OrderView, error) {
	query := db.Preload("DishSnapshot").
		Where("guest_id = ?", guest.ID).
		Order("created_at DESC")
	if models.IsValidOrderStatus(statusFilter) {
		query = query.Where("status = ?", statusFilter)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}
	return views, nil
}

// GetOrderDetail returns one of the guest's orders. An order belonging to a
// different guest is reported as not found, the same as a nonexistent one,
// so order ids don't leak across sessions.
func GetOrderDetail(db *gorm.DB, guest *models.Guest, orderID uint) (*OrderView, error) {
	var order models.Order
	err := db.Preload("DishSnapshot").
		Where("id = ? AND guest_id = ?", orderID, guest.ID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	view := newOrderView(order)
	return &view, nil
}

// RequestPayment aggregates the guest's unsettled orders and notifies staff
// that the table wants to pay. Order statuses are not mutated; settlement is
// staff tooling's job.
func RequestPayment(db *gorm.DB, guest *models.Guest) (*PaymentSummary, error) {
	var orders []models.Order
	err := db.Preload("DishSnapshot").
		Where("guest_id = ? AND status IN ?", guest.ID, models.UnpaidOrderStatuses).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNothingToPay
	}

	summary := &PaymentSummary{OrderCount: len(orders)}
	for _, order := range orders {
		summary.TotalAmount += order.DishSnapshot.Price * order.Quantity
	}

	Notify(guest.TenantID, EventPaymentRequested, map[string]interface{}{
		"guestId":     guest.ID,
		"guestName":   guest.Name,
		"tableNumber": guest.TableNumber,
		"orderCount":  summary.OrderCount,
		"totalAmount": summary.TotalAmount,
	})

	return summary, nil
}

func newOrderView(order models.Order) OrderView {
	return OrderView{
		ID:        order.ID,
		Status:    order.Status,
		Quantity:  order.Quantity,
		Notes:     order.Notes,
		CreatedAt: order.CreatedAt,
		Dish: OrderDishView{
			Name:  order.DishSnapshot.Name,
			Price: order.DishSnapshot.Price,
			Image: order.DishSnapshot.Image,
		},
		TotalPrice: order.DishSnapshot.Price * order.Quantity,
	}
}
