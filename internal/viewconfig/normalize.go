package viewconfig

import (
	"sort"

	"github.com/ianroy/makerflowPM/internal/models"
)

// Normalize repairs a configuration against the schema of its board so that
// renderers can trust it. Unknown Kanban statuses are kept; they are harmless
// and survive a change of the kind's status set.
func Normalize(cfg *ViewConfig, schema models.Schema) {
	if cfg.Kanban.Statuses == nil {
		cfg.Kanban.Statuses = make(map[string]*Entry)
	}
	if cfg.List.Columns == nil {
		cfg.List.Columns = make(map[int]*Entry)
	}
	if cfg.Mode != ModeKanban && cfg.Mode != ModeList {
		cfg.Mode = ModeKanban
	}

	normalizeColors(cfg)

	for status, e := range cfg.Kanban.Statuses {
		if e == nil {
			delete(cfg.Kanban.Statuses, status)
			continue
		}
		if !e.Sort.Valid() {
			e.Sort = SortNone
		}
		if _, ok := schema.Field(e.SortField); !ok {
			e.SortField = ""
		}
		if _, ok := schema.Field(e.GroupBy); !ok {
			e.GroupBy = ""
		}
	}

	total := cfg.ColumnCount(schema)
	for idx, e := range cfg.List.Columns {
		if e == nil || idx < 0 {
			delete(cfg.List.Columns, idx)
			continue
		}
		// per-column sort and grouping only exist in the Kanban namespace
		e.Sort = SortNone
		e.SortField = ""
		e.GroupBy = ""
	}

	restricted := func(idx int) bool {
		e := cfg.List.Columns[idx]
		return e != nil && e.RestrictView
	}

	cfg.List.VisibleColumns = clampColumns(cfg.List.VisibleColumns, total)
	visible := cfg.List.VisibleColumns[:0]
	for _, idx := range cfg.List.VisibleColumns {
		if !restricted(idx) {
			visible = append(visible, idx)
		}
	}
	cfg.List.VisibleColumns = visible

	if !cfg.List.SortDir.Valid() || cfg.List.SortDir == SortNone ||
		cfg.List.SortColumn < 0 || cfg.List.SortColumn >= total || restricted(cfg.List.SortColumn) {
		cfg.List.SortColumn = -1
		cfg.List.SortDir = SortNone
	}
	if cfg.List.GroupBy < 0 || cfg.List.GroupBy >= total || restricted(cfg.List.GroupBy) {
		cfg.List.GroupBy = -1
	}

	for i := range cfg.List.Overlays {
		o := &cfg.List.Overlays[i]
		// an overlay may only follow a column that exists before it
		if o.After < -1 || o.After >= len(schema.Fields)+i {
			o.After = len(schema.Fields) - 1
		}
		if o.Type == "" {
			o.Type = models.FieldText
		}
	}
}

// clampColumns keeps in-range indices, de-duplicated and ascending. An empty
// result means every column.
func clampColumns(cols []int, total int) []int {
	seen := make(map[int]bool, len(cols))
	out := make([]int, 0, len(cols))
	for _, idx := range cols {
		if idx < 0 || idx >= total || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	if len(out) == 0 {
		for i := 0; i < total; i++ {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// normalizeColors rewrites every color to "#rrggbb" and drops invalid ones
func normalizeColors(cfg *ViewConfig) {
	fix := func(e *Entry) {
		if e == nil {
			return
		}
		if e.Color != "" {
			e.Color, _ = NormalizeColor(e.Color)
		}
		for value, color := range e.ValueColors {
			if c, ok := NormalizeColor(color); ok {
				e.ValueColors[value] = c
			} else {
				delete(e.ValueColors, value)
			}
		}
	}
	for _, e := range cfg.Kanban.Statuses {
		fix(e)
	}
	for _, e := range cfg.List.Columns {
		fix(e)
	}
}
