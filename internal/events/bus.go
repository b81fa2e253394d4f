package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const listenerBuffer = 32

// Bus delivers events to listeners in the same process. Delivery never
// blocks the sender: a listener whose buffer is full misses the event.
type Bus struct {
	mu           sync.Mutex
	listeners    map[chan Event]struct{}
	boardKey     string
	lastSequence int64
	closed       bool
}

// NewBus creates an in-process publisher subscribed to every board
func NewBus() *Bus {
	return &Bus{listeners: make(map[chan Event]struct{})}
}

// SendEvent stamps the event and fans it out to every listener
func (b *Bus) SendEvent(_ context.Context, event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	b.lastSequence++
	event.SequenceID = b.lastSequence
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if !event.matches(b.boardKey) {
		return nil
	}

	for ch := range b.listeners {
		select {
		case ch <- event:
		default:
			slog.Debug("event listener full, dropping event",
				"event_type", event.Type,
				"board_key", event.BoardKey,
				"sequence_id", event.SequenceID)
		}
	}
	return nil
}

// Listen registers a listener until ctx is done
func (b *Bus) Listen(ctx context.Context) (<-chan Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	ch := make(chan Event, listenerBuffer)
	b.listeners[ch] = struct{}{}

	go func() {
		<-ctx.Done()
		b.remove(ch)
	}()
	return ch, nil
}

func (b *Bus) remove(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.listeners[ch]; ok {
		delete(b.listeners, ch)
		close(ch)
	}
}

// Subscribe changes the board filter
func (b *Bus) Subscribe(boardKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.boardKey = boardKey
	return nil
}

// Close closes every listener channel. Closing twice is a no-op.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for ch := range b.listeners {
		delete(b.listeners, ch)
		close(ch)
	}
	return nil
}
