package viewconfig

import (
	"context"
	"fmt"

	"github.com/ianroy/makerflowPM/internal/database"
)

// SQLStore keeps configurations in the view_configs table of the local database
type SQLStore struct {
	repo *database.ViewConfigRepo
}

// Compile-time verification that *SQLStore implements Store
var _ Store = (*SQLStore)(nil)

// NewSQLStore creates a store over the view configuration repository
func NewSQLStore(repo *database.ViewConfigRepo) *SQLStore {
	return &SQLStore{repo: repo}
}

// Load decodes the stored blob or returns defaults
func (s *SQLStore) Load(ctx context.Context, boardKey string) (*ViewConfig, error) {
	blob, found, err := s.repo.Get(ctx, boardKey)
	if err != nil {
		return Default(boardKey), fmt.Errorf("failed to read view configuration: %w", err)
	}
	if !found {
		return Default(boardKey), nil
	}
	return decodeLogged(boardKey, blob), nil
}

// Save encodes and upserts cfg
func (s *SQLStore) Save(ctx context.Context, boardKey string, cfg *ViewConfig) error {
	blob, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := s.repo.Put(ctx, boardKey, blob); err != nil {
		return fmt.Errorf("failed to write view configuration: %w", err)
	}
	return nil
}

// Delete removes a board's configuration
func (s *SQLStore) Delete(ctx context.Context, boardKey string) error {
	if err := s.repo.Delete(ctx, boardKey); err != nil {
		return fmt.Errorf("failed to delete view configuration: %w", err)
	}
	return nil
}
