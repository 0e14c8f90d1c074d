package services

import (
	"context"
	"sync"
)

// PublishedEvent records one event captured by the mock notifier
type PublishedEvent struct {
	TenantID uint
	Event    string
	Payload  interface{}
}

// MockNotifier is a mock implementation of Notifier for testing
type MockNotifier struct {
	events []PublishedEvent
	fail   error
	mu     sync.RWMutex
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SetAsMockForTesting sets this mock as the global notifier instance for testing
func (m *MockNotifier) SetAsMockForTesting() {
	SetNotifier(m)
}

// FailWith makes subsequent publishes return err, to exercise the
// best-effort call sites
func (m *MockNotifier) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Publish implements Notifier
func (m *MockNotifier) Publish(ctx context.Context, tenantID uint, event string, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.events = append(m.events, PublishedEvent{TenantID: tenantID, Event: event, Payload: payload})
	return nil
}

// Events returns a copy of all captured events
func (m *MockNotifier) Events() []PublishedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// EventsNamed returns captured events with the given name
func (m *MockNotifier) EventsNamed(event string) []PublishedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []PublishedEvent
	for _, e := range m.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears all captured events
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
	m.fail = nil
}
