package viewconfig

import (
	"errors"
	"testing"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#ABC", "#aabbcc", true},
		{"abc", "#aabbcc", true},
		{"#1A2b3C", "#1a2b3c", true},
		{" 00ff00 ", "#00ff00", true},
		{"notacolor", "", false},
		{"#abcd", "", false},
		{"#ggg", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTripDropsInvalidColor(t *testing.T) {
	cfg := Default("u1:tasks:all")
	done := cfg.StatusEntry("Done")
	done.Color = "notacolor"
	done.Alias = "Shipped"
	done.Hidden = true
	todo := cfg.StatusEntry("Todo")
	todo.Color = "#F0F"
	col := cfg.ColumnEntry(2)
	col.Filter = "high"
	col.ValueColors = map[string]string{"High": "notacolor", "Low": "0f0"}
	cfg.Search = "laser"
	cfg.Mode = ModeList

	blob, err := Encode(cfg)
	require.NoError(t, err)

	got, err := Decode("u1:tasks:all", blob)
	require.NoError(t, err)

	assert.Empty(t, got.Status("Done").Color)
	assert.Equal(t, "Shipped", got.Status("Done").Alias)
	assert.True(t, got.Status("Done").Hidden)
	assert.Equal(t, "#ff00ff", got.Status("Todo").Color)
	assert.Equal(t, "high", got.Column(2).Filter)
	assert.Equal(t, map[string]string{"Low": "#00ff00"}, got.Column(2).ValueColors)
	assert.Equal(t, "laser", got.Search)
	assert.Equal(t, ModeList, got.Mode)
	assert.Equal(t, -1, got.List.SortColumn)
}

func TestDecodeMalformedFieldKeepsTheRest(t *testing.T) {
	blob := []byte(`{
		"version": 1,
		"search": 42,
		"kanban": {"statuses": {
			"Todo": {"alias": "Backlog", "hidden": "yes"},
			"Archived": {"collapsed": true},
			"Broken": []
		}},
		"list": {"columns": {"x": {}, "1": {"required": true}}, "sort_column": "first", "group_by": 3}
	}`)

	cfg, err := Decode("k", blob)
	var corrupt *ConfigCorrupt
	require.True(t, errors.As(err, &corrupt))
	assert.Contains(t, corrupt.Dropped, "$.search")
	assert.Contains(t, corrupt.Dropped, "$.kanban.statuses.Todo.hidden")
	assert.Contains(t, corrupt.Dropped, "$.list.sort_column")

	require.NotNil(t, cfg)
	assert.Equal(t, "Backlog", cfg.Status("Todo").Alias)
	assert.False(t, cfg.Status("Todo").Hidden)
	assert.True(t, cfg.Status("Archived").Collapsed)
	assert.Nil(t, cfg.Status("Broken"))
	assert.True(t, cfg.Column(1).Required)
	assert.Equal(t, -1, cfg.List.SortColumn)
	assert.Equal(t, 3, cfg.List.GroupBy)
}

func TestDecodeGarbageYieldsDefaults(t *testing.T) {
	for _, blob := range []string{"not json", "[1,2,3]", "null", `"str"`} {
		cfg, err := Decode("k", []byte(blob))
		var corrupt *ConfigCorrupt
		assert.True(t, errors.As(err, &corrupt), blob)
		require.NotNil(t, cfg)
		assert.Equal(t, ModeKanban, cfg.Mode)
		assert.Empty(t, cfg.Kanban.Statuses)
	}

	cfg, err := Decode("k", nil)
	assert.NoError(t, err)
	assert.Equal(t, "k", cfg.BoardKey)
}

func TestOverlaysRoundTrip(t *testing.T) {
	cfg := Default("k")
	cfg.List.Overlays = []OverlayColumn{{
		ID: "ov1", Title: "Notes (copy)", After: 3, Type: models.FieldText,
		Values: map[int64]string{7: "seven", 9: ""},
	}}

	blob, err := Encode(cfg)
	require.NoError(t, err)
	got, err := Decode("k", blob)
	require.NoError(t, err)

	require.Len(t, got.List.Overlays, 1)
	assert.Equal(t, cfg.List.Overlays[0], got.List.Overlays[0])
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Default("k")
	cfg.StatusEntry("Todo").ValueAliases = map[string]string{"a": "b"}
	cfg.List.VisibleColumns = []int{0, 1}

	clone := cfg.Clone()
	clone.StatusEntry("Todo").ValueAliases["a"] = "changed"
	clone.List.VisibleColumns[0] = 5
	clone.StatusEntry("Done").Hidden = true

	assert.Equal(t, "b", cfg.Status("Todo").ValueAliases["a"])
	assert.Equal(t, 0, cfg.List.VisibleColumns[0])
	assert.Nil(t, cfg.Status("Done"))
}

func TestBoardKey(t *testing.T) {
	key := BoardKey("ian", models.KindTasks, "")
	assert.Equal(t, "ian:tasks:all", key)

	user, kind, scope, err := ParseBoardKey(key)
	require.NoError(t, err)
	assert.Equal(t, "ian", user)
	assert.Equal(t, models.KindTasks, kind)
	assert.Equal(t, "all", scope)

	_, _, _, err = ParseBoardKey("ian:widgets:all")
	assert.ErrorIs(t, err, ErrInvalidBoardKey)
	_, _, _, err = ParseBoardKey("nocolons")
	assert.ErrorIs(t, err, ErrInvalidBoardKey)
}
