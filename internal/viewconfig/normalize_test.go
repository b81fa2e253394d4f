package viewconfig

import (
	"testing"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeVisibleColumns(t *testing.T) {
	schema := models.SchemaFor(models.KindTasks)
	total := len(schema.Fields)

	t.Run("clamps and de-duplicates", func(t *testing.T) {
		cfg := Default("k")
		cfg.List.VisibleColumns = []int{3, -1, 1, 3, 99}
		Normalize(cfg, schema)
		assert.Equal(t, []int{1, 3}, cfg.List.VisibleColumns)
	})

	t.Run("empty after clamping means all", func(t *testing.T) {
		cfg := Default("k")
		cfg.List.VisibleColumns = []int{-4, 500}
		Normalize(cfg, schema)
		assert.Len(t, cfg.List.VisibleColumns, total)
	})

	t.Run("restrict-view columns leave the visible set", func(t *testing.T) {
		cfg := Default("k")
		cfg.ColumnEntry(2).RestrictView = true
		Normalize(cfg, schema)
		assert.Len(t, cfg.List.VisibleColumns, total-1)
		assert.NotContains(t, cfg.List.VisibleColumns, 2)
	})
}

func TestNormalizeClearsSortAndGroupOnRestrictedColumn(t *testing.T) {
	schema := models.SchemaFor(models.KindTasks)
	cfg := Default("k")
	cfg.List.SortColumn = 2
	cfg.List.SortDir = SortAsc
	cfg.List.GroupBy = 2
	cfg.ColumnEntry(2).RestrictView = true

	Normalize(cfg, schema)
	assert.Equal(t, -1, cfg.List.SortColumn)
	assert.Equal(t, SortNone, cfg.List.SortDir)
	assert.Equal(t, -1, cfg.List.GroupBy)
}

func TestNormalizeSortDirection(t *testing.T) {
	schema := models.SchemaFor(models.KindTasks)
	cfg := Default("k")
	cfg.List.SortColumn = 1
	cfg.List.SortDir = "sideways"
	cfg.StatusEntry("Todo").Sort = "up"
	cfg.StatusEntry("Todo").SortField = "nope"
	cfg.Mode = "grid"

	Normalize(cfg, schema)
	assert.Equal(t, -1, cfg.List.SortColumn)
	assert.Equal(t, SortNone, cfg.Status("Todo").Sort)
	assert.Empty(t, cfg.Status("Todo").SortField)
	assert.Equal(t, ModeKanban, cfg.Mode)
}

func TestNormalizeKeepsUnknownStatuses(t *testing.T) {
	schema := models.SchemaFor(models.KindTasks)
	cfg := Default("k")
	cfg.StatusEntry("Icebox").Hidden = true
	cfg.Kanban.Statuses["Nil"] = nil

	Normalize(cfg, schema)
	assert.True(t, cfg.Status("Icebox").Hidden)
	_, ok := cfg.Kanban.Statuses["Nil"]
	assert.False(t, ok)
}

func TestNormalizeCountsOverlayColumns(t *testing.T) {
	schema := models.SchemaFor(models.KindTasks)
	cfg := Default("k")
	cfg.List.Overlays = []OverlayColumn{{ID: "a", Title: "Extra", After: 999}}
	cfg.List.VisibleColumns = []int{len(schema.Fields)}

	Normalize(cfg, schema)
	assert.Equal(t, []int{len(schema.Fields)}, cfg.List.VisibleColumns)
	assert.Equal(t, len(schema.Fields)-1, cfg.List.Overlays[0].After)
	assert.Equal(t, models.FieldText, cfg.List.Overlays[0].Type)
}
