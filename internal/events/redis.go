package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher shares board events between processes over Redis pub/sub.
// Sequence numbers come from a shared counter so every listener sees one
// ordering regardless of which process published.
type RedisPublisher struct {
	rdb       *redis.Client
	namespace string

	mu       sync.Mutex
	boardKey string
	subs     []*redis.PubSub
	closed   bool
}

// NewRedisPublisher creates a publisher for the given namespace
func NewRedisPublisher(opts *redis.Options, namespace string) (*RedisPublisher, error) {
	if namespace == "" {
		return nil, ErrEmptyNamespace
	}
	return &RedisPublisher{rdb: redis.NewClient(opts), namespace: namespace}, nil
}

// Channel returns the pub/sub channel of the namespace
func (p *RedisPublisher) Channel() string {
	return fmt.Sprintf("makerflow:%s:events", p.namespace)
}

func (p *RedisPublisher) sequenceKey() string {
	return fmt.Sprintf("makerflow:%s:events:seq", p.namespace)
}

// SendEvent stamps the event with the next shared sequence and publishes it
func (p *RedisPublisher) SendEvent(ctx context.Context, event Event) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrClosed
	}

	seq, err := p.rdb.Incr(ctx, p.sequenceKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate event sequence: %w", err)
	}
	event.SequenceID = seq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.Channel(), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Listen subscribes to the namespace channel. Duplicate or out-of-order
// deliveries (sequence not above the last seen) are dropped.
func (p *RedisPublisher) Listen(ctx context.Context) (<-chan Event, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	p.mu.Unlock()

	ps := p.rdb.Subscribe(ctx, p.Channel())
	// wait for the subscription confirmation so no publish is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}

	p.mu.Lock()
	p.subs = append(p.subs, ps)
	p.mu.Unlock()

	out := make(chan Event, listenerBuffer)
	go p.listenLoop(ctx, ps, out)
	return out, nil
}

func (p *RedisPublisher) listenLoop(ctx context.Context, ps *redis.PubSub, out chan Event) {
	defer close(out)
	defer func() { _ = ps.Close() }()

	var lastSequence int64
	msgs := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Warn("dropping malformed event", "channel", msg.Channel, "error", err)
				continue
			}
			if event.SequenceID <= lastSequence {
				continue
			}
			lastSequence = event.SequenceID

			p.mu.Lock()
			wanted := event.matches(p.boardKey)
			p.mu.Unlock()
			if !wanted {
				continue
			}

			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Subscribe changes the board filter for every listener
func (p *RedisPublisher) Subscribe(boardKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.boardKey = boardKey
	return nil
}

// Ping verifies Redis connectivity
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Close unsubscribes every listener and closes the Redis connection
func (p *RedisPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	subs := p.subs
	p.subs = nil
	p.mu.Unlock()

	for _, ps := range subs {
		if err := ps.Close(); err != nil {
			slog.Debug("error closing event subscription", "error", err)
		}
	}
	return p.rdb.Close()
}
