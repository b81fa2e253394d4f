// Package cache holds the in-memory index of the records loaded for one board.
// It carries no business validation; the record service is the source of truth
// and the cache is rebuilt wholesale on every full refresh.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/recordservice"
)

// Cache indexes the records of one board by id while keeping load order
type Cache struct {
	mu       sync.RWMutex
	boardKey string
	kind     models.EntityKind
	params   recordservice.ListParams
	service  recordservice.Service

	order  []int64
	byID   map[int64]*models.Record
	loaded bool
}

// New creates an empty cache for a board
func New(boardKey string, kind models.EntityKind, params recordservice.ListParams, service recordservice.Service) *Cache {
	return &Cache{
		boardKey: boardKey,
		kind:     kind,
		params:   params,
		service:  service,
		byID:     make(map[int64]*models.Record),
	}
}

// Kind returns the entity kind of the board
func (c *Cache) Kind() models.EntityKind {
	return c.kind
}

// Load performs a full refresh and returns the records in load order.
// On failure the previous contents are discarded and a *FetchError is returned.
func (c *Cache) Load(ctx context.Context) ([]*models.Record, error) {
	records, err := c.service.List(ctx, c.kind, c.params)
	if err != nil {
		c.mu.Lock()
		c.order = nil
		c.byID = make(map[int64]*models.Record)
		c.loaded = false
		c.mu.Unlock()

		slog.Error("board load failed", "board", c.boardKey, "error", err)
		return nil, &FetchError{BoardKey: c.boardKey, Err: err}
	}

	c.mu.Lock()
	c.order = make([]int64, 0, len(records))
	c.byID = make(map[int64]*models.Record, len(records))
	for _, rec := range records {
		if _, dup := c.byID[rec.ID]; dup {
			continue
		}
		c.order = append(c.order, rec.ID)
		c.byID[rec.ID] = rec.Clone()
	}
	c.loaded = true
	c.mu.Unlock()

	slog.Debug("board loaded", "board", c.boardKey, "records", len(records))
	return c.Records(), nil
}

// Loaded reports whether the last full refresh succeeded
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Get returns a snapshot of one record
func (c *Cache) Get(id int64) (*models.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Patch sets one field in place and returns the previous value
func (c *Cache) Patch(id int64, field, value string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.byID[id]
	if !ok {
		return "", ErrRecordNotCached
	}
	return rec.Set(field, value), nil
}

// Replace overwrites the fields of a cached record with canonical values.
// Fields absent from canonical keep their cached value.
func (c *Cache) Replace(id int64, canonical map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.byID[id]
	if !ok {
		return ErrRecordNotCached
	}
	for k, v := range canonical {
		rec.Set(k, v)
	}
	return nil
}

// Remove drops a record and returns it with its load-order index for Restore
func (c *Cache) Remove(id int64) (*models.Record, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.byID[id]
	if !ok {
		return nil, -1, ErrRecordNotCached
	}
	idx := -1
	for i, oid := range c.order {
		if oid == id {
			idx = i
			break
		}
	}
	delete(c.byID, id)
	if idx >= 0 {
		c.order = append(c.order[:idx], c.order[idx+1:]...)
	}
	return rec, idx, nil
}

// Restore puts a removed record back at its previous position
func (c *Cache) Restore(rec *models.Record, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byID[rec.ID]; exists {
		return
	}
	if index < 0 || index > len(c.order) {
		index = len(c.order)
	}
	c.order = append(c.order, 0)
	copy(c.order[index+1:], c.order[index:])
	c.order[index] = rec.ID
	c.byID[rec.ID] = rec
}

// Records returns clones of every cached record in load order
func (c *Cache) Records() []*models.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*models.Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// Len returns the number of cached records
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
