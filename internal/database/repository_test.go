package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// ============================================================================
// Local Test Helpers (to avoid import cycle with testutil)
// ============================================================================

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ============================================================================
// Records
// ============================================================================

func TestRecordCreateAppendsInLoadOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	first, err := repo.Records.Create(ctx, models.KindTasks, map[string]string{"title": "First", "status": "Todo"})
	require.NoError(t, err)
	second, err := repo.Records.Create(ctx, models.KindTasks, map[string]string{"title": "Second", "status": "Done"})
	require.NoError(t, err)
	_, err = repo.Records.Create(ctx, models.KindAssets, map[string]string{"name": "Printer"})
	require.NoError(t, err)

	records, err := repo.Records.List(ctx, models.KindTasks, "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
	assert.Equal(t, "Second", records[1].Get("title"))
	assert.Equal(t, models.KindTasks, records[1].Kind)
}

func TestRecordListSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	_, err := repo.Records.Create(ctx, models.KindTasks, map[string]string{"title": "Laser cutter training"})
	require.NoError(t, err)
	_, err = repo.Records.Create(ctx, models.KindTasks, map[string]string{"title": "Order filament"})
	require.NoError(t, err)

	records, err := repo.Records.List(ctx, models.KindTasks, "LASER")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Laser cutter training", records[0].Title())
}

func TestRecordUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	rec, err := repo.Records.Create(ctx, models.KindTasks, map[string]string{"title": "Draft", "priority": "Low"})
	require.NoError(t, err)

	rec.Set("priority", "High")
	require.NoError(t, repo.Records.UpdateFields(ctx, models.KindTasks, rec.ID, rec.Fields))

	got, err := repo.Records.Get(ctx, models.KindTasks, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "High", got.Get("priority"))

	require.NoError(t, repo.Records.Delete(ctx, models.KindTasks, rec.ID))
	_, err = repo.Records.Get(ctx, models.KindTasks, rec.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, repo.Records.Delete(ctx, models.KindTasks, rec.ID), ErrRecordNotFound)
}

func TestRecordGetWrongKind(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	rec, err := repo.Records.Create(ctx, models.KindTasks, map[string]string{"title": "Scoped"})
	require.NoError(t, err)

	_, err = repo.Records.Get(ctx, models.KindProjects, rec.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	n, err := repo.Records.CountByKind(ctx, models.KindTasks)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// ============================================================================
// Lookups
// ============================================================================

func TestPeopleAreDeduplicatedAndSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Lookups.AddPerson(ctx, "user", "Priya"))
	require.NoError(t, repo.Lookups.AddPerson(ctx, "user", "Alex"))
	require.NoError(t, repo.Lookups.AddPerson(ctx, "user", "Alex"))
	require.NoError(t, repo.Lookups.AddPerson(ctx, "team", "Fabrication"))

	users, err := repo.Lookups.People(ctx, "user")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alex", users[0].Name)
	assert.Equal(t, "Priya", users[1].Name)

	assert.Error(t, repo.Lookups.AddPerson(ctx, "planet", "Mars"))
}

func TestPermissionsDefaultAndOverride(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	perm, err := repo.Lookups.Permissions(ctx, models.KindTasks)
	require.NoError(t, err)
	assert.True(t, perm.CanEdit)
	assert.True(t, perm.CanDelete)
	assert.Empty(t, perm.DeleteRequiresStatus)

	require.NoError(t, repo.Lookups.SetPermissions(ctx, models.KindTasks, models.Permissions{
		CanEdit:              true,
		CanDelete:            true,
		DeleteRequiresStatus: []string{"Done", "Blocked"},
	}))
	require.NoError(t, repo.Lookups.SetPermissions(ctx, models.KindAssets, models.Permissions{}))

	perm, err = repo.Lookups.Permissions(ctx, models.KindTasks)
	require.NoError(t, err)
	assert.Equal(t, []string{"Done", "Blocked"}, perm.DeleteRequiresStatus)

	perm, err = repo.Lookups.Permissions(ctx, models.KindAssets)
	require.NoError(t, err)
	assert.False(t, perm.CanEdit)
	assert.False(t, perm.CanDelete)
}

// ============================================================================
// View configuration blobs
// ============================================================================

func TestViewConfigUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	_, found, err := repo.ViewConfigs.Get(ctx, "u1:tasks:all")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.ViewConfigs.Put(ctx, "u1:tasks:all", []byte(`{"v":1}`)))
	require.NoError(t, repo.ViewConfigs.Put(ctx, "u1:tasks:all", []byte(`{"v":2}`)))

	blob, found, err := repo.ViewConfigs.Get(ctx, "u1:tasks:all")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"v":2}`, string(blob))

	require.NoError(t, repo.ViewConfigs.Delete(ctx, "u1:tasks:all"))
	_, found, err = repo.ViewConfigs.Get(ctx, "u1:tasks:all")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitDBPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	db, err := InitDB(ctx, dir)
	require.NoError(t, err)
	_, err = NewRepository(db).Records.Create(ctx, models.KindTasks, map[string]string{"title": "Persisted"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDB(ctx, dir)
	require.NoError(t, err)
	defer db.Close()

	records, err := NewRepository(db).Records.List(ctx, models.KindTasks, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Persisted", records[0].Title())
}
