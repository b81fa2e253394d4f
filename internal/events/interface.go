package events

import "context"

// EventPublisher defines the interface for sending and receiving board events.
// Boards publish through it; layouts and other processes listen.
type EventPublisher interface {
	// SendEvent stamps and delivers an event to listeners
	SendEvent(ctx context.Context, event Event) error

	// Listen returns a channel of events for the current subscription.
	// The channel is closed when ctx is done or the publisher closes.
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe restricts future deliveries to one board; "" means all boards
	Subscribe(boardKey string) error

	// Close stops delivery and closes every listener channel
	Close() error
}

// Compile-time verification that both backends implement EventPublisher
var (
	_ EventPublisher = (*Bus)(nil)
	_ EventPublisher = (*RedisPublisher)(nil)
)
