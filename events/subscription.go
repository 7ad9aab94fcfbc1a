package events

//go:generate mockgen -destination=mocks/subscription.go . ISubscription,ISubscriptionManager

import (
	"context"
	"sync"
)

// EventType describes what happened to a cache entry
type EventType string

const (
	EventUpdated     EventType = "updated"
	EventInvalidated EventType = "invalidated"
	EventRemoved     EventType = "removed"
	EventCleared     EventType = "cleared"
)

// Event is delivered to subscribers on every cache change.
// Key is empty for EventCleared.
type Event struct {
	Key  string    `json:"key,omitempty"`
	Type EventType `json:"type"`
}

// subscriberBuffer is the number of events a subscriber may lag behind
// before new events are dropped for it
const subscriberBuffer = 16

// ISubscription defines the contract for subscription objects
type ISubscription interface {
	// Chan returns a read-only channel for self-handling events
	Chan() <-chan Event
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb on each event
	// If callNow is true, cb is called immediately with a zero Event
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(Event), callNow bool) ISubscription
}

// ISubscriptionManager defines the contract for managing subscriptions
type ISubscriptionManager interface {
	// Subscribe creates a new subscription and returns it
	Subscribe() ISubscription
	// Unsubscribe removes a subscription by its channel
	Unsubscribe(ch chan Event)
	// Emit sends the event to all subscribers (non-blocking if their channel is full)
	Emit(ctx context.Context, event Event)
	// Count returns the number of active subscribers
	Count() int
}

type Subscription struct {
	ch     chan Event
	mgr    *SubscriptionManager
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns a read-only channel for self-handling events.
func (s *Subscription) Chan() <-chan Event { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.mgr.Unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb on each event.
func (s *Subscription) Watch(parentCtx context.Context, cb func(Event), callNow bool) ISubscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	if callNow {
		cb(Event{})
	}

	go func(ctx context.Context) {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-s.ch:
				if !ok {
					return
				}
				cb(event)
			}
		}
	}(ctx)

	return s
}

type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan Event]struct{}),
	}
}

func (m *SubscriptionManager) Subscribe() ISubscription {
	ch := make(chan Event, subscriberBuffer)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{ch: ch, mgr: m}
}

func (m *SubscriptionManager) Unsubscribe(ch chan Event) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Emit sends the event to all subscribers (non-blocking if their channel is full).
func (m *SubscriptionManager) Emit(ctx context.Context, event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			return
		case sub <- event:
		default:
			// subscriber is lagging, drop
		}
	}
}

func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}
