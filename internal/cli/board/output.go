package board

import (
	"fmt"
	"strings"

	engine "github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/tui/renderers"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// RecordJSON is a record as printed by --json
type RecordJSON struct {
	ID     int64             `json:"id"`
	Kind   models.EntityKind `json:"kind"`
	Fields map[string]string `json:"fields"`
}

func toRecordJSON(rec *models.Record) *RecordJSON {
	if rec == nil {
		return nil
	}
	return &RecordJSON{ID: rec.ID, Kind: rec.Kind, Fields: rec.Fields}
}

// KanbanOutput is the Kanban projection of a board
type KanbanOutput struct {
	BoardKey     string         `json:"board_key"`
	Mode         string         `json:"mode"`
	Search       string         `json:"search,omitempty"`
	Person       string         `json:"person,omitempty"`
	VisibleCount int            `json:"visible_count"`
	Columns      []KanbanColumn `json:"columns"`

	label string
	view  projection.KanbanView
	width int
}

// KanbanColumn is one status column
type KanbanColumn struct {
	Status       string       `json:"status"`
	Label        string       `json:"label"`
	Color        string       `json:"color,omitempty"`
	Description  string       `json:"description,omitempty"`
	Collapsed    bool         `json:"collapsed"`
	RestrictEdit bool         `json:"restrict_edit"`
	MuteAssign   bool         `json:"mute_assign"`
	Filter       string       `json:"filter,omitempty"`
	Sort         string       `json:"sort,omitempty"`
	Count        int          `json:"count"`
	Items        []KanbanItem `json:"items"`
}

// KanbanItem is a card or a group separator
type KanbanItem struct {
	Separator bool        `json:"separator,omitempty"`
	Group     string      `json:"group,omitempty"`
	Record    *RecordJSON `json:"record,omitempty"`
}

func newKanbanOutput(b *engine.Board, width int) *KanbanOutput {
	view := b.Kanban()
	cfg := b.Config()
	out := &KanbanOutput{
		BoardKey:     b.Key(),
		Mode:         string(viewconfig.ModeKanban),
		Search:       cfg.Search,
		Person:       cfg.Person,
		VisibleCount: view.VisibleCount,
		Columns:      make([]KanbanColumn, 0, len(view.Columns)),
		label:        b.Schema().Label,
		view:         view,
		width:        width,
	}
	for _, col := range view.Columns {
		c := KanbanColumn{
			Status:       col.Status,
			Label:        col.Label,
			Color:        col.Color,
			Description:  col.Description,
			Collapsed:    col.Collapsed,
			RestrictEdit: col.RestrictEdit,
			MuteAssign:   col.MuteAssign,
			Filter:       col.Filter,
			Sort:         string(col.Sort),
			Count:        col.Count,
			Items:        make([]KanbanItem, 0, len(col.Items)),
		}
		for _, it := range col.Items {
			if it.Separator {
				c.Items = append(c.Items, KanbanItem{Separator: true, Group: it.Group})
				continue
			}
			c.Items = append(c.Items, KanbanItem{Record: toRecordJSON(it.Record)})
		}
		out.Columns = append(out.Columns, c)
	}
	return out
}

// Human renders the board the way the interactive view draws it
func (o *KanbanOutput) Human() string {
	header := boardHeader(o.label, viewconfig.ModeKanban, o.VisibleCount, o.Search, o.Person)
	return header + "\n\n" + renderers.RenderKanban(o.view, renderers.Selection{Column: -1, Row: -1}, o.width, 0, nil)
}

// ListOutput is the List projection of a board
type ListOutput struct {
	BoardKey     string       `json:"board_key"`
	Mode         string       `json:"mode"`
	Search       string       `json:"search,omitempty"`
	Person       string       `json:"person,omitempty"`
	VisibleCount int          `json:"visible_count"`
	Columns      []ListColumn `json:"columns"`
	Rows         []ListRow    `json:"rows"`

	label string
	view  projection.ListView
	width int
}

// ListColumn is one table column
type ListColumn struct {
	Index        int    `json:"index"`
	Key          string `json:"key"`
	Label        string `json:"label"`
	Type         string `json:"type"`
	Overlay      bool   `json:"overlay,omitempty"`
	Required     bool   `json:"required,omitempty"`
	RestrictEdit bool   `json:"restrict_edit,omitempty"`
	ReadOnly     bool   `json:"read_only,omitempty"`
	MuteAssign   bool   `json:"mute_assign,omitempty"`
	Filter       string `json:"filter,omitempty"`
	Sort         string `json:"sort,omitempty"`
	Grouped      bool   `json:"grouped,omitempty"`
}

// ListRow is a record row or a group separator
type ListRow struct {
	Separator bool     `json:"separator,omitempty"`
	Group     string   `json:"group,omitempty"`
	ID        int64    `json:"id,omitempty"`
	Cells     []string `json:"cells,omitempty"`
}

func newListOutput(b *engine.Board, width int) *ListOutput {
	view := b.List()
	cfg := b.Config()
	out := &ListOutput{
		BoardKey:     b.Key(),
		Mode:         string(viewconfig.ModeList),
		Search:       cfg.Search,
		Person:       cfg.Person,
		VisibleCount: view.VisibleCount,
		Columns:      make([]ListColumn, 0, len(view.Columns)),
		Rows:         make([]ListRow, 0, len(view.Rows)),
		label:        b.Schema().Label,
		view:         view,
		width:        width,
	}
	for _, col := range view.Columns {
		out.Columns = append(out.Columns, ListColumn{
			Index:        col.Index,
			Key:          col.Key,
			Label:        col.Label,
			Type:         string(col.Type),
			Overlay:      col.Overlay,
			Required:     col.Required,
			RestrictEdit: col.RestrictEdit,
			ReadOnly:     col.ReadOnly,
			MuteAssign:   col.MuteAssign,
			Filter:       col.Filter,
			Sort:         string(col.Sort),
			Grouped:      col.Grouped,
		})
	}
	for _, row := range view.Rows {
		if row.Separator {
			out.Rows = append(out.Rows, ListRow{Separator: true, Group: row.Group})
			continue
		}
		cells := make([]string, len(row.Cells))
		for i, v := range row.Cells {
			cells[i] = view.Columns[i].Display(v)
		}
		out.Rows = append(out.Rows, ListRow{ID: row.Record.ID, Cells: cells})
	}
	return out
}

// Human renders the table the way the interactive view draws it
func (o *ListOutput) Human() string {
	header := boardHeader(o.label, viewconfig.ModeList, o.VisibleCount, o.Search, o.Person)
	return header + "\n\n" + renderers.RenderList(o.view, renderers.Selection{Column: -1, Row: -1}, o.width, 0, nil)
}

func boardHeader(label string, mode viewconfig.Mode, count int, search, person string) string {
	parts := []string{fmt.Sprintf("%s · %s · %d %s", label, mode, count, plural(count, "record"))}
	if search != "" {
		parts = append(parts, fmt.Sprintf("search %q", search))
	}
	if person != "" {
		parts = append(parts, "person "+person)
	}
	return strings.Join(parts, " · ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// RecordResult is returned by edit, move and delete
type RecordResult struct {
	Action  string      `json:"action"`
	Record  *RecordJSON `json:"record,omitempty"`
	ID      int64       `json:"id"`
	Field   string      `json:"field,omitempty"`
	Value   string      `json:"value,omitempty"`
	Message string      `json:"message,omitempty"`
}

// GetID lets --quiet print the record ID
func (r *RecordResult) GetID() int {
	return int(r.ID)
}

// Human summarizes the change in one line
func (r *RecordResult) Human() string {
	var line string
	switch r.Action {
	case "move":
		line = fmt.Sprintf("✓ Moved #%d to %s", r.ID, r.Value)
	case "delete":
		line = fmt.Sprintf("✓ Deleted #%d", r.ID)
	default:
		value := r.Value
		if value == "" {
			value = "(empty)"
		}
		line = fmt.Sprintf("✓ Updated #%d: %s = %s", r.ID, r.Field, value)
	}
	if r.Message != "" {
		line += "\n" + r.Message
	}
	return line
}
