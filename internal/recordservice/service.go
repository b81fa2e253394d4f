// Package recordservice is the boundary to the authority that owns records.
// The board engine only lists, saves and deletes through Service; it never
// originates record identifiers.
package recordservice

import (
	"context"

	"github.com/ianroy/makerflowPM/internal/models"
)

// ListParams narrows a full-refresh fetch
type ListParams struct {
	Scope  string // opaque scope forwarded to the service (e.g. a team or space)
	Search string
}

// SaveResult carries the canonical state of a record after a partial update
type SaveResult struct {
	Canonical map[string]string
}

// Service defines the record operations the board engine depends on
type Service interface {
	List(ctx context.Context, kind models.EntityKind, params ListParams) ([]*models.Record, error)
	Save(ctx context.Context, kind models.EntityKind, id int64, changed map[string]string) (*SaveResult, error)
	Delete(ctx context.Context, kind models.EntityKind, id int64) error
	Lookups(ctx context.Context) (*models.Lookups, error)
}
