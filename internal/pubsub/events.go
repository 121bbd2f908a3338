// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import "time"

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent announces a new item, such as a log entry.
	CreatedEvent EventType = "created"
	// ChangedEvent announces that a watched theme file changed on disk.
	ChangedEvent EventType = "changed"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
