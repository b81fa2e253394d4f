package events

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisPublisher(t *testing.T) (*RedisPublisher, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	p, err := NewRedisPublisher(&redis.Options{Addr: mr.Addr()}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, mr
}

func TestNewRedisPublisherRequiresNamespace(t *testing.T) {
	_, err := NewRedisPublisher(&redis.Options{Addr: "127.0.0.1:0"}, "")
	assert.ErrorIs(t, err, ErrEmptyNamespace)
}

func TestRedisPublisherDelivers(t *testing.T) {
	p, mr := newTestRedisPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, p.Ping(ctx))
	ch, err := p.Listen(ctx)
	require.NoError(t, err)

	require.NoError(t, p.SendEvent(ctx, Event{Type: EventRecordChanged, BoardKey: "u1:tasks:all", RecordID: 9}))
	ev := receive(t, ch)
	assert.Equal(t, EventRecordChanged, ev.Type)
	assert.Equal(t, "u1:tasks:all", ev.BoardKey)
	assert.Equal(t, int64(9), ev.RecordID)
	assert.Equal(t, int64(1), ev.SequenceID)

	seq, err := mr.Get("makerflow:test:events:seq")
	require.NoError(t, err)
	assert.Equal(t, "1", seq)
}

func TestRedisPublishersShareSequence(t *testing.T) {
	p, mr := newTestRedisPublisher(t)
	other, err := NewRedisPublisher(&redis.Options{Addr: mr.Addr()}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := p.Listen(ctx)
	require.NoError(t, err)

	require.NoError(t, other.SendEvent(ctx, Event{Type: EventViewChanged, BoardKey: "k"}))
	require.NoError(t, p.SendEvent(ctx, Event{Type: EventViewChanged, BoardKey: "k"}))

	assert.Equal(t, int64(1), receive(t, ch).SequenceID)
	assert.Equal(t, int64(2), receive(t, ch).SequenceID)
}

func TestRedisPublisherDropsDuplicatesAndGarbage(t *testing.T) {
	p, mr := newTestRedisPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := p.Listen(ctx)
	require.NoError(t, err)

	mr.Publish(p.Channel(), "not json")
	mr.Publish(p.Channel(), `{"type":"record_changed","board_key":"k","sequence_id":5}`)
	mr.Publish(p.Channel(), `{"type":"record_changed","board_key":"k","sequence_id":5}`)
	mr.Publish(p.Channel(), `{"type":"record_deleted","board_key":"k","sequence_id":6}`)

	assert.Equal(t, int64(5), receive(t, ch).SequenceID)
	ev := receive(t, ch)
	assert.Equal(t, int64(6), ev.SequenceID)
	assert.Equal(t, EventRecordDeleted, ev.Type)
}

func TestRedisPublisherSubscribeFilters(t *testing.T) {
	p, _ := newTestRedisPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := p.Listen(ctx)
	require.NoError(t, err)

	require.NoError(t, p.Subscribe("u1:assets:all"))
	require.NoError(t, p.SendEvent(ctx, Event{Type: EventRecordChanged, BoardKey: "u1:tasks:all"}))
	require.NoError(t, p.SendEvent(ctx, Event{Type: EventRecordChanged, BoardKey: "u1:assets:all"}))

	assert.Equal(t, "u1:assets:all", receive(t, ch).BoardKey)
}

func TestRedisPublisherUnreachable(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close()

	p, err := NewRedisPublisher(&redis.Options{Addr: addr, MaxRetries: -1}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	assert.Error(t, p.SendEvent(context.Background(), Event{Type: EventRecordChanged}))
}

func TestRedisPublisherClose(t *testing.T) {
	p, _ := newTestRedisPublisher(t)
	ch, err := p.Listen(context.Background())
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	for range ch {
	}
	assert.ErrorIs(t, p.SendEvent(context.Background(), Event{}), ErrClosed)
}
