package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

var (
	eventsMu sync.RWMutex
	events   = map[string]string{}
)

// Event[T] binds a topic name to its payload type.
type Event[T any] struct {
	topicName string
}

// NewEvent declares a typed event. Declaring the same topic twice panics,
// since events are package-level values and a clash is a programming error.
func NewEvent[T any](name, description string) Event[T] {
	eventsMu.Lock()
	defer eventsMu.Unlock()
	if _, dup := events[name]; dup {
		panic(fmt.Sprintf("pubsub: event %q declared twice", name))
	}
	events[name] = description
	return Event[T]{topicName: name}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Events lists the declared topics in name order.
func Events() []string {
	eventsMu.RLock()
	defer eventsMu.RUnlock()
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Publish sends a typed event.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], userID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Name(), err)
	}
	return p.Publish(ctx, Message{
		Topic:   event.Name(),
		UserID:  userID,
		Payload: data,
	})
}

// Subscribe decodes each message of the event's topic into T before calling fn.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], fn func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", event.Name(), err)
		}
		return fn(ctx, payload)
	})
}
