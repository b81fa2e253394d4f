package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func assertNoEvent(t *testing.T, ch <-chan Event) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx := context.Background()

	a, err := bus.Listen(ctx)
	require.NoError(t, err)
	b, err := bus.Listen(ctx)
	require.NoError(t, err)

	require.NoError(t, bus.SendEvent(ctx, Event{Type: EventRecordChanged, BoardKey: "u1:tasks:all", RecordID: 4}))

	for _, ch := range []<-chan Event{a, b} {
		ev := receive(t, ch)
		assert.Equal(t, EventRecordChanged, ev.Type)
		assert.Equal(t, int64(4), ev.RecordID)
		assert.Equal(t, int64(1), ev.SequenceID)
		assert.False(t, ev.Timestamp.IsZero())
	}
}

func TestBusSequenceIncreases(t *testing.T) {
	bus := NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx := context.Background()
	ch, _ := bus.Listen(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.SendEvent(ctx, Event{Type: EventViewChanged, BoardKey: "k"}))
	}
	var last int64
	for i := 0; i < 3; i++ {
		ev := receive(t, ch)
		assert.Greater(t, ev.SequenceID, last)
		last = ev.SequenceID
	}
}

func TestBusSubscribeFiltersBoards(t *testing.T) {
	bus := NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx := context.Background()
	ch, _ := bus.Listen(ctx)

	require.NoError(t, bus.Subscribe("u1:assets:all"))
	require.NoError(t, bus.SendEvent(ctx, Event{Type: EventRecordChanged, BoardKey: "u1:tasks:all"}))
	assertNoEvent(t, ch)

	require.NoError(t, bus.SendEvent(ctx, Event{Type: EventRecordChanged, BoardKey: "u1:assets:all"}))
	assert.Equal(t, "u1:assets:all", receive(t, ch).BoardKey)
}

func TestBusListenerRemovedOnCancel(t *testing.T) {
	bus := NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := bus.Listen(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("listener channel not closed after cancel")
	}
	require.NoError(t, bus.SendEvent(context.Background(), Event{Type: EventRecordChanged}))
}

func TestBusFullListenerDoesNotBlock(t *testing.T) {
	bus := NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	ctx := context.Background()
	_, _ = bus.Listen(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < listenerBuffer*2; i++ {
			_ = bus.SendEvent(ctx, Event{Type: EventRecordChanged})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendEvent blocked on a full listener")
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus()
	ch, _ := bus.Listen(context.Background())

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	_, ok := <-ch
	assert.False(t, ok)
	assert.ErrorIs(t, bus.SendEvent(context.Background(), Event{}), ErrClosed)
	_, err := bus.Listen(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, bus.Subscribe("x"), ErrClosed)
}
