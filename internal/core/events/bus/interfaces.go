package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus. The simulator host uses
// it to deliver contact events to controllers, and controllers use it to
// announce episode boundaries to cosmetic listeners.
//
// Delivery is synchronous: Publish invokes handlers in the caller goroutine,
// so a contact published before the next tick is resolved before that tick's
// reward evaluation. Handler errors are joined and returned.
//
// Topics scope delivery. The default topic is "". Controllers subscribe on a
// topic named after their agent id.
type EventBus interface {
	// Publish delivers the event to subscribers of event.Type() in the default topic.
	Publish(event Event) error
	// PublishToTopic delivers the event to subscribers of event.Type() in topic.
	PublishToTopic(topic string, event Event) error
	// PublishAsync publishes in a separate goroutine. The returned channel
	// receives the joined handler error (or nil) and is then closed.
	PublishAsync(topic string, event Event) <-chan error

	// Subscribe registers a handler for eventType in the default topic.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// SubscribeTopic registers a handler for eventType within topic.
	SubscribeTopic(topic, eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the subscription. Nil is accepted.
	Unsubscribe(Subscription) error

	// GetMetrics returns a snapshot of delivery counters.
	GetMetrics() Metrics
}

// Event is an immutable message. Implementations should treat it as read-only.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type EventHandler func(event Event) error

// Subscription is a registered handler bound to a topic and an event type.
type Subscription interface {
	ID() string
	Topic() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
