package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/events"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// Manager is the registry of open boards. Opening the same board key twice
// returns the same Board so every layout shares one cache.
type Manager struct {
	service   recordservice.Service
	store     viewconfig.Store
	publisher events.EventPublisher

	mu     sync.Mutex
	boards map[string]*Board
}

// NewManager creates a registry. publisher may be nil.
func NewManager(service recordservice.Service, store viewconfig.Store, publisher events.EventPublisher) *Manager {
	return &Manager{
		service:   service,
		store:     store,
		publisher: publisher,
		boards:    make(map[string]*Board),
	}
}

// Publisher returns the event publisher boards announce changes on
func (m *Manager) Publisher() events.EventPublisher {
	return m.publisher
}

// Open returns the board for a key, loading its configuration, lookups and
// records the first time. A failed record load does not fail Open: the
// board is returned with LoadError set so the caller can show a
// placeholder and Refresh later.
func (m *Manager) Open(ctx context.Context, boardKey string, kind models.EntityKind) (*Board, error) {
	_, keyKind, scope, err := viewconfig.ParseBoardKey(boardKey)
	if err != nil {
		return nil, err
	}
	if keyKind != kind {
		return nil, fmt.Errorf("%w: board %q is not a %s board", viewconfig.ErrInvalidBoardKey, boardKey, kind)
	}

	m.mu.Lock()
	if b, ok := m.boards[boardKey]; ok {
		m.mu.Unlock()
		return b, nil
	}
	ctrl := customize.Load(ctx, m.store, boardKey, kind)
	b := newBoard(boardKey, kind, scope, m.service, ctrl, m.publisher)
	m.boards[boardKey] = b
	m.mu.Unlock()

	if err := b.refresh(ctx); err != nil {
		slog.Warn("board opened without records", "board", boardKey, "session", b.SessionID(), "error", err)
	} else {
		slog.Info("board opened", "board", boardKey, "session", b.SessionID(), "records", b.cache.Len())
	}
	return b, nil
}

// Get returns an open board
func (m *Manager) Get(boardKey string) (*Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.boards[boardKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBoardNotOpen, boardKey)
	}
	return b, nil
}

// Keys returns the keys of every open board
func (m *Manager) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.boards))
	for k := range m.boards {
		keys = append(keys, k)
	}
	return keys
}

// Close forgets a board. Its configuration is already persisted.
func (m *Manager) Close(boardKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.boards, boardKey)
}
