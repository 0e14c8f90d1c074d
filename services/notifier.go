package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lifecycle events published to staff dashboards
const (
	EventGuestJoined      = "guest_joined"
	EventNewOrders        = "new_orders"
	EventPaymentRequested = "payment_requested"
)

// Notifier publishes lifecycle events onto a tenant-scoped channel.
// Delivery is best-effort: callers go through Notify, which swallows
// failures after the primary transaction has committed.
type Notifier interface {
	Publish(ctx context.Context, tenantID uint, event string, payload interface{}) error
}

var notifierInstance Notifier = &NoopNotifier{}

// GetNotifier returns the configured notifier instance
func GetNotifier() Notifier {
	return notifierInstance
}

// SetNotifier sets the notifier instance (primarily for testing)
func SetNotifier(n Notifier) {
	notifierInstance = n
}

// Notify publishes an event and discards any failure. The order/session
// flows call this after commit; a dead Redis must never fail a request.
func Notify(tenantID uint, event string, payload interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := notifierInstance.Publish(ctx, tenantID, event, payload); err != nil {
		log.Printf("Failed to publish %s event for tenant %d: %v", event, tenantID, err)
	}
}

// NoopNotifier drops all events. Used when no Redis address is configured.
type NoopNotifier struct{}

// Publish implements Notifier
func (NoopNotifier) Publish(ctx context.Context, tenantID uint, event string, payload interface{}) error {
	return nil
}

// RedisNotifier publishes events over Redis pub/sub, one channel per tenant.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier backed by the given Redis server
func NewRedisNotifier(addr, password string) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisNotifier{client: client}
}

// TenantChannel returns the pub/sub channel name for a tenant
func TenantChannel(tenantID uint) string {
	return fmt.Sprintf("tenant:%d:events", tenantID)
}

// Publish implements Notifier
func (n *RedisNotifier) Publish(ctx context.Context, tenantID uint, event string, payload interface{}) error {
	message, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}
	return n.client.Publish(ctx, TenantChannel(tenantID), message).Err()
}
