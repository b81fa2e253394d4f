package viewconfig

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Store persists one configuration blob per board key. Load never fails
// because of corrupt data; only an unreachable backend is an error.
type Store interface {
	Load(ctx context.Context, boardKey string) (*ViewConfig, error)
	Save(ctx context.Context, boardKey string, cfg *ViewConfig) error
	Delete(ctx context.Context, boardKey string) error
}

// decodeLogged decodes a blob and reports corruption to the log only
func decodeLogged(boardKey string, blob []byte) *ViewConfig {
	cfg, err := Decode(boardKey, blob)
	if err != nil {
		var corrupt *ConfigCorrupt
		if errors.As(err, &corrupt) {
			slog.Warn("view configuration normalized to defaults", "board", boardKey, "error", corrupt)
		}
	}
	return cfg
}

// MemoryStore keeps encoded blobs in process memory
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// Compile-time verification that *MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Load decodes the stored blob or returns defaults
func (s *MemoryStore) Load(_ context.Context, boardKey string) (*ViewConfig, error) {
	s.mu.Lock()
	blob := s.blobs[boardKey]
	s.mu.Unlock()
	return decodeLogged(boardKey, blob), nil
}

// Save encodes and stores cfg
func (s *MemoryStore) Save(_ context.Context, boardKey string, cfg *ViewConfig) error {
	blob, err := Encode(cfg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.blobs[boardKey] = blob
	s.mu.Unlock()
	return nil
}

// Delete forgets a board's configuration
func (s *MemoryStore) Delete(_ context.Context, boardKey string) error {
	s.mu.Lock()
	delete(s.blobs, boardKey)
	s.mu.Unlock()
	return nil
}

// Raw returns the stored blob, for inspection
func (s *MemoryStore) Raw(boardKey string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[boardKey]
}

// PutRaw stores a blob verbatim
func (s *MemoryStore) PutRaw(boardKey string, blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[boardKey] = blob
}
