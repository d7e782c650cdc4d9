// Package pubsub is the in-process event bus. Session lifecycle events are
// published here and consumed by the server's audit and metrics subscribers.
package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g. "session.expired").
	Topic string
	// UserID identifies the user the event concerns, if known.
	UserID string
	// Payload contains the JSON-encoded event.
	Payload []byte
	// Metadata carries arbitrary key-value context such as the request ID.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the bus.
type Subscriber interface {
	// Subscribe starts listening to the given topic, processing messages with
	// the handler in the background until ctx is canceled or the bus closes.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
