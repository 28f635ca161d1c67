// util/event_bus.go

package util

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
)

const (
	EventSubscriptionExpired = "subscription.expired"
)

// Event represents an event in the system
type Event struct {
	Type       string
	Payload    interface{}
	OccurredAt time.Time
}

// ExpiredPayload is published after the applier wrote the sentinel.
type ExpiredPayload struct {
	FBID          string
	Sentinel      string
	RecordUpdated bool
	RecordError   string
}

// EventHandler is a function that handles an event
type EventHandler func(context.Context, Event) error

// EventBus fans events out to subscribers on their own goroutines. Handler
// errors are collected on a buffered channel and logged by Start.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	errorChan   chan error
	inflight    sync.WaitGroup
}

// NewEventBus creates a new EventBus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventHandler),
		errorChan:   make(chan error, 100),
	}
}

// Subscribe adds a new subscriber for a specific event type
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
}

// Publish sends an event to all subscribers without waiting for them.
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload interface{}) {
	eb.mu.RLock()
	handlers := append([]EventHandler(nil), eb.subscribers[eventType]...)
	eb.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	event := Event{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now(),
	}

	// Handlers outlive the publisher's request scope.
	ctx = context.WithoutCancel(ctx)

	for _, handler := range handlers {
		eb.inflight.Add(1)
		go func(h EventHandler) {
			defer eb.inflight.Done()
			if err := h(ctx, event); err != nil {
				select {
				case eb.errorChan <- fmt.Errorf("event handler error for %s: %w", eventType, err):
				default:
					logger.Error("Error channel full, logging event handler error",
						zap.Error(err),
						zap.String("eventType", eventType))
				}
			}
		}(handler)
	}
}

// Start begins processing events and handling errors
func (eb *EventBus) Start(ctx context.Context) {
	go eb.processErrors(ctx)
}

// Wait blocks until every handler started so far has returned.
func (eb *EventBus) Wait() {
	eb.inflight.Wait()
}

func (eb *EventBus) processErrors(ctx context.Context) {
	for {
		select {
		case err := <-eb.errorChan:
			logger.Error("Event handler error", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}
