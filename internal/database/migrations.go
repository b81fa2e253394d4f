package database

import (
	"context"
	"database/sql"
)

// RunMigrations creates the database schema if needed
func RunMigrations(ctx context.Context, db *sql.DB) error {
	statements := []string{
		// Records of every entity kind; fields are a JSON object of display strings
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			fields TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_kind
		ON records(kind, position, id)`,

		// Users, teams and spaces used by reference fields
		`CREATE TABLE IF NOT EXISTS people (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL CHECK (category IN ('user', 'team', 'space')),
			name TEXT NOT NULL,
			UNIQUE(category, name)
		)`,

		// Per-kind permission policy served with the lookups
		`CREATE TABLE IF NOT EXISTS kind_permissions (
			kind TEXT PRIMARY KEY,
			can_edit BOOLEAN NOT NULL DEFAULT 1,
			can_delete BOOLEAN NOT NULL DEFAULT 1,
			delete_requires_status TEXT NOT NULL DEFAULT ''
		)`,

		// Persisted view configuration blobs, one per board key
		`CREATE TABLE IF NOT EXISTS view_configs (
			board_key TEXT PRIMARY KEY,
			blob BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
