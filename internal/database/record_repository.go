package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ianroy/makerflowPM/internal/models"
)

// ErrRecordNotFound is returned when no record matches the kind and id
var ErrRecordNotFound = errors.New("record not found")

// RecordRepo provides record persistence
type RecordRepo struct {
	db *sql.DB
}

// NewRecordRepo creates a record repository over db
func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// ============================================================================
// Record Operations
// ============================================================================

// Create inserts a record at the end of its kind and returns it with its new ID
func (r *RecordRepo) Create(ctx context.Context, kind models.EntityKind, fields map[string]string) (*models.Record, error) {
	blob, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fields: %w", err)
	}

	var id int64
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM records WHERE kind = ?`,
			string(kind),
		).Scan(&next); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO records (kind, position, fields) VALUES (?, ?, ?)`,
			string(kind), next, string(blob),
		)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return r.Get(ctx, kind, id)
}

// List returns the records of a kind in load order. A non-empty search
// restricts the result to records whose field blob contains it.
func (r *RecordRepo) List(ctx context.Context, kind models.EntityKind, search string) ([]*models.Record, error) {
	query := `SELECT id, kind, fields, updated_at FROM records WHERE kind = ?`
	args := []any{string(kind)}
	if search = strings.TrimSpace(search); search != "" {
		query += ` AND LOWER(fields) LIKE ?`
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	query += ` ORDER BY position, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Get retrieves a single record
func (r *RecordRepo) Get(ctx context.Context, kind models.EntityKind, id int64) (*models.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, kind, fields, updated_at FROM records WHERE kind = ? AND id = ?`,
		string(kind), id,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateFields replaces the stored field object of a record
func (r *RecordRepo) UpdateFields(ctx context.Context, kind models.EntityKind, id int64, fields map[string]string) error {
	blob, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE records SET fields = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE kind = ? AND id = ?`,
		string(blob), string(kind), id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// Delete removes a record
func (r *RecordRepo) Delete(ctx context.Context, kind models.EntityKind, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE kind = ? AND id = ?`,
		string(kind), id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// CountByKind returns how many records of a kind exist
func (r *RecordRepo) CountByKind(ctx context.Context, kind models.EntityKind) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE kind = ?`, string(kind),
	).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var (
		id        int64
		kind      string
		blob      string
		updatedAt time.Time
	)
	if err := row.Scan(&id, &kind, &blob, &updatedAt); err != nil {
		return nil, err
	}

	rec := models.NewRecord(id, models.EntityKind(kind))
	rec.UpdatedAt = updatedAt
	if blob != "" {
		if err := json.Unmarshal([]byte(blob), &rec.Fields); err != nil {
			return nil, fmt.Errorf("record %d has malformed fields: %w", id, err)
		}
	}
	if rec.Fields == nil {
		rec.Fields = make(map[string]string)
	}
	return rec, nil
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
