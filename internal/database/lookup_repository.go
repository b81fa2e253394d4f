package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ianroy/makerflowPM/internal/models"
)

// LookupRepo provides the people tables and per-kind permission policy
type LookupRepo struct {
	db *sql.DB
}

// NewLookupRepo creates a lookup repository over db
func NewLookupRepo(db *sql.DB) *LookupRepo {
	return &LookupRepo{db: db}
}

// AddPerson inserts a user, team or space if it does not exist yet
func (r *LookupRepo) AddPerson(ctx context.Context, category, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO people (category, name) VALUES (?, ?)`,
		category, name,
	)
	return err
}

// People lists every entry of one category by name
func (r *LookupRepo) People(ctx context.Context, category string) ([]models.Person, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM people WHERE category = ? ORDER BY name`,
		category,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetPermissions stores the permission policy for a kind
func (r *LookupRepo) SetPermissions(ctx context.Context, kind models.EntityKind, perm models.Permissions) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kind_permissions (kind, can_edit, can_delete, delete_requires_status)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(kind) DO UPDATE SET
			can_edit = excluded.can_edit,
			can_delete = excluded.can_delete,
			delete_requires_status = excluded.delete_requires_status`,
		string(kind), perm.CanEdit, perm.CanDelete, strings.Join(perm.DeleteRequiresStatus, "|"),
	)
	return err
}

// Permissions returns the stored policy for a kind. Kinds without a row get
// full edit and delete rights.
func (r *LookupRepo) Permissions(ctx context.Context, kind models.EntityKind) (models.Permissions, error) {
	var (
		perm     models.Permissions
		statuses string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT can_edit, can_delete, delete_requires_status FROM kind_permissions WHERE kind = ?`,
		string(kind),
	).Scan(&perm.CanEdit, &perm.CanDelete, &statuses)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Permissions{CanEdit: true, CanDelete: true}, nil
	}
	if err != nil {
		return models.Permissions{}, err
	}
	if statuses != "" {
		perm.DeleteRequiresStatus = strings.Split(statuses, "|")
	}
	return perm, nil
}
