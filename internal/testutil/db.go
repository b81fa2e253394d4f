package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ianroy/makerflowPM/internal/database"
	"github.com/ianroy/makerflowPM/internal/models"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo returns a repository over a fresh in-memory database
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestRecord inserts a record and returns its ID
func CreateTestRecord(t *testing.T, repo *database.Repository, kind models.EntityKind, fields map[string]string) int64 {
	t.Helper()
	rec, err := repo.Records.Create(context.Background(), kind, fields)
	if err != nil {
		t.Fatalf("Failed to create test record: %v", err)
	}
	return rec.ID
}

// CreateTestTask inserts a task with the given title and status
func CreateTestTask(t *testing.T, repo *database.Repository, title, status string) int64 {
	t.Helper()
	return CreateTestRecord(t, repo, models.KindTasks, map[string]string{
		"title":    title,
		"status":   status,
		"priority": "Medium",
		"project":  "MakerLab Launch",
	})
}
