package projection

import (
	"sort"
	"strconv"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// ListColumn is one rendered column of the table
type ListColumn struct {
	Index        int    // column index in the board's addressing
	Key          string // field key, or overlay id
	Label        string
	Type         models.FieldType
	Overlay      bool
	Color        string
	Required     bool
	RestrictEdit bool
	ReadOnly     bool
	MuteAssign   bool
	Filter       string
	Sort         viewconfig.SortDir
	Grouped      bool
	ValueAliases map[string]string
	ValueColors  map[string]string
}

// Display returns the alias of a cell value, or the value itself
func (c ListColumn) Display(value string) string {
	if alias, ok := c.ValueAliases[value]; ok && alias != "" {
		return alias
	}
	return value
}

// ListRow is a record row or a group separator row
type ListRow struct {
	Separator bool
	Group     string
	Record    *models.Record
	Cells     []string // raw values, aligned with ListView.Columns
}

// ListView is the tabular layout of a board
type ListView struct {
	Columns      []ListColumn
	Rows         []ListRow
	VisibleCount int
}

// VisibleIDs returns the ids of every rendered record row
func (v ListView) VisibleIDs() []int64 {
	var ids []int64
	for _, r := range v.Rows {
		if !r.Separator {
			ids = append(ids, r.Record.ID)
		}
	}
	return ids
}

// ColumnOrder returns every addressable column index in render order:
// schema fields in declared order with each overlay placed after the
// column it was inserted next to.
func ColumnOrder(schema models.Schema, cfg *viewconfig.ViewConfig) []int {
	n := len(schema.Fields)
	after := make(map[int][]int)
	for i, o := range cfg.List.Overlays {
		after[o.After] = append(after[o.After], n+i)
	}

	var order []int
	var place func(idx int)
	place = func(idx int) {
		order = append(order, idx)
		for _, ov := range after[idx] {
			place(ov)
		}
	}
	for _, ov := range after[-1] {
		place(ov)
	}
	for i := 0; i < n; i++ {
		place(i)
	}
	return order
}

// CellValue returns the raw value of column idx for a record
func CellValue(schema models.Schema, cfg *viewconfig.ViewConfig, rec *models.Record, idx int) string {
	if idx < len(schema.Fields) {
		return rec.Get(schema.Fields[idx].Key)
	}
	if o, ok := cfg.Overlay(schema, idx); ok {
		return o.Values[rec.ID]
	}
	return ""
}

// describeColumn builds the header of column idx
func describeColumn(in Input, idx int) ListColumn {
	col := ListColumn{Index: idx, Type: models.FieldText}
	if idx < len(in.Schema.Fields) {
		f := in.Schema.Fields[idx]
		col.Key, col.Label, col.Type = f.Key, f.Label, f.Type
		col.Required = f.Required
		col.ReadOnly = f.ReadOnly
	} else if o, ok := in.Config.Overlay(in.Schema, idx); ok {
		col.Key, col.Label, col.Type, col.Overlay = o.ID, o.Title, o.Type, true
	}

	if e := in.Config.Column(idx); e != nil {
		if e.Alias != "" {
			col.Label = e.Alias
		}
		col.Color = e.Color
		col.Required = col.Required || e.Required
		col.RestrictEdit = e.RestrictEdit
		col.MuteAssign = e.MuteAssign
		col.Filter = e.Filter
		col.ValueAliases = e.ValueAliases
		col.ValueColors = e.ValueColors
	}
	if in.Config.List.SortColumn == idx {
		col.Sort = in.Config.List.SortDir
	}
	col.Grouped = in.Config.List.GroupBy == idx
	return col
}

// columnShown reports whether column idx is rendered
func (in Input) columnShown(idx int, visible map[int]bool) bool {
	if len(visible) > 0 && !visible[idx] {
		return false
	}
	e := in.Config.Column(idx)
	return e == nil || (!e.Hidden && !e.Collapsed && !e.RestrictView)
}

// List projects the board into a table. Rows are filtered by the board
// search, the selected person and every in-scope column filter, then sorted,
// then grouped.
func List(in Input) ListView {
	visible := make(map[int]bool, len(in.Config.List.VisibleColumns))
	for _, idx := range in.Config.List.VisibleColumns {
		visible[idx] = true
	}

	order := ColumnOrder(in.Schema, in.Config)
	var view ListView
	for _, idx := range order {
		if in.columnShown(idx, visible) {
			view.Columns = append(view.Columns, describeColumn(in, idx))
		}
	}

	// column filters apply to every in-scope column, rendered or not
	type colFilter struct {
		idx    int
		filter string
	}
	var filters []colFilter
	for _, idx := range order {
		e := in.Config.Column(idx)
		if e != nil && e.Filter != "" && !e.RestrictView {
			filters = append(filters, colFilter{idx: idx, filter: e.Filter})
		}
	}

	var records []*models.Record
	for _, rec := range in.Records {
		if !in.boardVisible(rec) {
			continue
		}
		ok := true
		for _, f := range filters {
			if !matches(CellValue(in.Schema, in.Config, rec, f.idx), f.filter) {
				ok = false
				break
			}
		}
		if ok {
			records = append(records, rec)
		}
	}

	if sc := in.Config.List.SortColumn; sc >= 0 && in.Config.List.SortDir != viewconfig.SortNone {
		desc := in.Config.List.SortDir == viewconfig.SortDesc
		sort.SliceStable(records, func(i, j int) bool {
			c := Compare(CellValue(in.Schema, in.Config, records[i], sc), CellValue(in.Schema, in.Config, records[j], sc))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	view.Rows = make([]ListRow, 0, len(records))
	for _, rec := range records {
		row := ListRow{Record: rec, Cells: make([]string, len(view.Columns))}
		for i, col := range view.Columns {
			row.Cells[i] = CellValue(in.Schema, in.Config, rec, col.Index)
		}
		view.Rows = append(view.Rows, row)
	}

	if g := in.Config.List.GroupBy; g >= 0 {
		view.Rows = groupRuns(view.Rows,
			func(r ListRow) string { return CellValue(in.Schema, in.Config, r.Record, g) },
			func(k string) ListRow { return ListRow{Separator: true, Group: k} },
		)
	}

	view.VisibleCount = len(records)
	return view
}

// ColumnEditable reports whether inline inputs of List column idx are enabled
func ColumnEditable(in Input, idx int) bool {
	if e := in.Config.Column(idx); e != nil && e.RestrictEdit {
		return false
	}
	if idx >= len(in.Schema.Fields) {
		_, ok := in.Config.Overlay(in.Schema, idx)
		return ok
	}
	return in.Permissions.CanEdit && !in.Schema.Fields[idx].ReadOnly
}

// ChooserItem is one selectable entry of the column-visibility chooser
type ChooserItem struct {
	Index   int
	Label   string
	Visible bool
}

// Chooser lists the columns a user may toggle. Restrict-view columns are
// not selectable and do not appear.
func Chooser(in Input) []ChooserItem {
	visible := make(map[int]bool, len(in.Config.List.VisibleColumns))
	for _, idx := range in.Config.List.VisibleColumns {
		visible[idx] = true
	}
	var items []ChooserItem
	for _, idx := range ColumnOrder(in.Schema, in.Config) {
		if in.fieldRestricted(idx) {
			continue
		}
		col := describeColumn(in, idx)
		label := col.Label
		if label == "" {
			label = "Column " + strconv.Itoa(idx+1)
		}
		items = append(items, ChooserItem{
			Index:   idx,
			Label:   label,
			Visible: len(visible) == 0 || visible[idx],
		})
	}
	return items
}
