// Package customize applies header-menu customizations to a board's view
// configuration. Every action is local and durable: it never calls the
// record service, and it is persisted as soon as it is applied.
package customize

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// Effects are the consequences of a command beyond the configuration itself
type Effects struct {
	// Edits are value changes Clear and Fill-down make on real columns.
	// They must go through the quick-edit synchronizer like manual edits.
	Edits []quickedit.Edit
	// Added is the index of a column the command created, or -1
	Added int
}

// Controller owns the live configuration of one board
type Controller struct {
	store    viewconfig.Store
	boardKey string
	schema   models.Schema

	mu  sync.RWMutex
	cfg *viewconfig.ViewConfig
}

// NewController wraps an already loaded configuration
func NewController(store viewconfig.Store, boardKey string, kind models.EntityKind, cfg *viewconfig.ViewConfig) *Controller {
	schema := models.SchemaFor(kind)
	if cfg == nil {
		cfg = viewconfig.Default(boardKey)
	}
	cfg.BoardKey = boardKey
	viewconfig.Normalize(cfg, schema)
	return &Controller{store: store, boardKey: boardKey, schema: schema, cfg: cfg}
}

// Load reads a board's configuration from the store. An unreachable store
// degrades to defaults; the error is logged, never returned.
func Load(ctx context.Context, store viewconfig.Store, boardKey string, kind models.EntityKind) *Controller {
	cfg, err := store.Load(ctx, boardKey)
	if err != nil {
		slog.Error("failed to load view configuration, using defaults", "board", boardKey, "error", err)
		cfg = viewconfig.Default(boardKey)
	}
	return NewController(store, boardKey, kind, cfg)
}

// Config returns the live configuration. Callers must not modify it.
func (c *Controller) Config() *viewconfig.ViewConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Snapshot returns a copy of the configuration
func (c *Controller) Snapshot() *viewconfig.ViewConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Clone()
}

// Apply runs a command against the records currently on the board, then
// normalizes and persists the result. Persistence failures are logged and
// the in-memory configuration still changes.
func (c *Controller) Apply(ctx context.Context, cmd Command, records []*models.Record, lookups *models.Lookups) (Effects, error) {
	effects := Effects{Added: -1}

	c.mu.Lock()
	next := c.cfg.Clone()
	e := &env{cfg: next, schema: c.schema, records: records, lookups: lookups, effects: &effects}
	if err := cmd.apply(e); err != nil {
		c.mu.Unlock()
		return Effects{Added: -1}, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	viewconfig.Normalize(next, c.schema)
	c.cfg = next
	saved := next.Clone()
	c.mu.Unlock()

	if err := c.store.Save(ctx, c.boardKey, saved); err != nil {
		slog.Error("failed to persist view configuration", "board", c.boardKey, "action", cmd.Name(), "error", err)
	} else {
		slog.Debug("view configuration saved", "board", c.boardKey, "action", cmd.Name())
	}
	return effects, nil
}
