package database

import (
	"context"
	"database/sql"
	"errors"
)

// ViewConfigRepo stores opaque view configuration blobs keyed by board key
type ViewConfigRepo struct {
	db *sql.DB
}

// NewViewConfigRepo creates a view configuration repository over db
func NewViewConfigRepo(db *sql.DB) *ViewConfigRepo {
	return &ViewConfigRepo{db: db}
}

// Get returns the blob for a board key; found is false when none was saved
func (r *ViewConfigRepo) Get(ctx context.Context, boardKey string) (blob []byte, found bool, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT blob FROM view_configs WHERE board_key = ?`, boardKey,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob, true, nil
}

// Put upserts the blob for a board key
func (r *ViewConfigRepo) Put(ctx context.Context, boardKey string, blob []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO view_configs (board_key, blob, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(board_key) DO UPDATE SET
			blob = excluded.blob,
			updated_at = CURRENT_TIMESTAMP`,
		boardKey, blob,
	)
	return err
}

// Delete removes the blob for a board key
func (r *ViewConfigRepo) Delete(ctx context.Context, boardKey string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM view_configs WHERE board_key = ?`, boardKey,
	)
	return err
}
