package events

import (
	"fmt"
	"sync"
	"time"
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	// Chat events
	ChatMessageAppended EventType = "chat:message_appended"
	ChatCleared         EventType = "chat:cleared"

	// Generation events
	GenerationStarted   EventType = "generation:started"
	GenerationSucceeded EventType = "generation:succeeded"
	GenerationFailed    EventType = "generation:failed"

	// Project events
	ProjectCreated  EventType = "project:created"
	ProjectUpdated  EventType = "project:updated"
	ProjectDeleted  EventType = "project:deleted"
	ProjectSelected EventType = "project:selected"

	// File events
	FilesReplaced EventType = "files:replaced"
	FileUpserted  EventType = "files:upserted"

	// Persistence events
	SnapshotSaved    EventType = "snapshot:saved"
	SnapshotReloaded EventType = "snapshot:reloaded"

	// System events
	SystemError EventType = "system:error"
)

// Event represents an event in the system
type Event struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// EventHandler is a function that handles events
type EventHandler func(event Event)

// EventBus provides event-driven communication between components
type EventBus struct {
	handlers map[EventType][]EventHandler
	mutex    sync.RWMutex
	inflight sync.WaitGroup
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

// Subscribe adds an event handler for a specific event type
func (eb *EventBus) Subscribe(eventType EventType, handler EventHandler) {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
}

// Unsubscribe removes all handlers for a specific event type
func (eb *EventBus) Unsubscribe(eventType EventType) {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	delete(eb.handlers, eventType)
}

// Emit publishes an event to all registered handlers
func (eb *EventBus) Emit(eventType EventType, data interface{}) {
	eb.mutex.RLock()
	handlers := eb.handlers[eventType]
	eb.mutex.RUnlock()

	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}

	// Execute handlers in goroutines to avoid blocking
	for _, handler := range handlers {
		eb.inflight.Add(1)
		go func(h EventHandler) {
			defer eb.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					fmt.Printf("Event handler panic for %s: %v\n", eventType, r)
				}
			}()
			h(event)
		}(handler)
	}
}

// Flush blocks until every handler dispatched so far has returned. Short-lived
// callers flush before exiting so no events are lost.
func (eb *EventBus) Flush() {
	eb.inflight.Wait()
}

// EmitSystemError emits a system error event
func (eb *EventBus) EmitSystemError(err error) {
	eb.Emit(SystemError, map[string]string{
		"error": err.Error(),
	})
}
