// Package viewconfig holds the per-board, per-user presentation settings of
// the Kanban and List views and persists them as an opaque blob per board key.
package viewconfig

import (
	"fmt"
	"strings"

	"github.com/ianroy/makerflowPM/internal/models"
)

// CurrentVersion is written into every encoded configuration
const CurrentVersion = 1

// Mode is the currently displayed renderer of a board
type Mode string

const (
	ModeKanban Mode = "kanban"
	ModeList   Mode = "list"
)

// Scope separates the Kanban and List configuration namespaces
type Scope string

const (
	ScopeKanban Scope = "kanban"
	ScopeList   Scope = "list"
)

// SortDir is a sort direction; the zero value means unsorted
type SortDir string

const (
	SortNone SortDir = ""
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Valid reports whether d is one of the known directions
func (d SortDir) Valid() bool {
	return d == SortNone || d == SortAsc || d == SortDesc
}

// Entry configures one Kanban status or one List column
type Entry struct {
	Alias        string
	Color        string // "#rrggbb" or empty
	Hidden       bool
	Collapsed    bool
	Required     bool
	RestrictEdit bool
	RestrictView bool
	MuteAssign   bool
	Description  string
	Filter       string
	Sort         SortDir // Kanban: per-status sort of the cards
	SortField    string  // Kanban: field key the cards are sorted by
	GroupBy      string  // Kanban: field key cards are grouped by

	// List only: display alias and color per distinct cell value
	ValueAliases map[string]string
	ValueColors  map[string]string
}

// IsZero reports whether the entry carries no customization
func (e *Entry) IsZero() bool {
	if e == nil {
		return true
	}
	return e.Alias == "" && e.Color == "" && !e.Hidden && !e.Collapsed &&
		!e.Required && !e.RestrictEdit && !e.RestrictView && !e.MuteAssign &&
		e.Description == "" && e.Filter == "" && e.Sort == SortNone &&
		e.SortField == "" && e.GroupBy == "" &&
		len(e.ValueAliases) == 0 && len(e.ValueColors) == 0
}

// OverlayColumn is a presentation-only List column. It never creates a
// backing field on the record service.
type OverlayColumn struct {
	ID     string
	Title  string
	After  int // rendered to the right of this column index
	Type   models.FieldType
	Values map[int64]string // per record id
}

// KanbanConfig is the Kanban namespace of a board
type KanbanConfig struct {
	Statuses map[string]*Entry
}

// ListConfig is the List namespace of a board. Column indices address schema
// fields first and then overlays in creation order.
type ListConfig struct {
	Columns        map[int]*Entry
	VisibleColumns []int
	SortColumn     int // -1 when unsorted
	SortDir        SortDir
	GroupBy        int // -1 when ungrouped
	Overlays       []OverlayColumn
}

// ViewConfig is everything one user customized about one board
type ViewConfig struct {
	Version  int
	BoardKey string
	Kanban   KanbanConfig
	List     ListConfig
	Search   string
	Person   string
	Mode     Mode
}

// Default returns the configuration of a board nobody customized yet
func Default(boardKey string) *ViewConfig {
	return &ViewConfig{
		Version:  CurrentVersion,
		BoardKey: boardKey,
		Kanban:   KanbanConfig{Statuses: make(map[string]*Entry)},
		List: ListConfig{
			Columns:    make(map[int]*Entry),
			SortColumn: -1,
			GroupBy:    -1,
		},
		Mode: ModeKanban,
	}
}

// Status returns the entry of a Kanban status, or nil
func (c *ViewConfig) Status(status string) *Entry {
	return c.Kanban.Statuses[status]
}

// StatusEntry returns the entry of a Kanban status, creating it if needed
func (c *ViewConfig) StatusEntry(status string) *Entry {
	if c.Kanban.Statuses == nil {
		c.Kanban.Statuses = make(map[string]*Entry)
	}
	e, ok := c.Kanban.Statuses[status]
	if !ok || e == nil {
		e = &Entry{}
		c.Kanban.Statuses[status] = e
	}
	return e
}

// Column returns the entry of a List column, or nil
func (c *ViewConfig) Column(index int) *Entry {
	return c.List.Columns[index]
}

// ColumnEntry returns the entry of a List column, creating it if needed
func (c *ViewConfig) ColumnEntry(index int) *Entry {
	if c.List.Columns == nil {
		c.List.Columns = make(map[int]*Entry)
	}
	e, ok := c.List.Columns[index]
	if !ok || e == nil {
		e = &Entry{}
		c.List.Columns[index] = e
	}
	return e
}

// Overlay returns the overlay addressed by a List column index
func (c *ViewConfig) Overlay(schema models.Schema, index int) (*OverlayColumn, bool) {
	i := index - len(schema.Fields)
	if i < 0 || i >= len(c.List.Overlays) {
		return nil, false
	}
	return &c.List.Overlays[i], true
}

// ColumnCount returns the number of addressable List columns
func (c *ViewConfig) ColumnCount(schema models.Schema) int {
	return len(schema.Fields) + len(c.List.Overlays)
}

// Clone returns a deep copy
func (c *ViewConfig) Clone() *ViewConfig {
	out := *c
	out.Kanban.Statuses = make(map[string]*Entry, len(c.Kanban.Statuses))
	for k, e := range c.Kanban.Statuses {
		out.Kanban.Statuses[k] = e.clone()
	}
	out.List.Columns = make(map[int]*Entry, len(c.List.Columns))
	for k, e := range c.List.Columns {
		out.List.Columns[k] = e.clone()
	}
	out.List.VisibleColumns = append([]int(nil), c.List.VisibleColumns...)
	out.List.Overlays = make([]OverlayColumn, len(c.List.Overlays))
	for i, o := range c.List.Overlays {
		o.Values = cloneMap(o.Values)
		out.List.Overlays[i] = o
	}
	return &out
}

func (e *Entry) clone() *Entry {
	if e == nil {
		return nil
	}
	out := *e
	out.ValueAliases = cloneMap(e.ValueAliases)
	out.ValueColors = cloneMap(e.ValueColors)
	return &out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// BoardKey builds the stable identifier of a board for one user
func BoardKey(user string, kind models.EntityKind, scope string) string {
	if user == "" {
		user = "local"
	}
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf("%s:%s:%s", user, kind, scope)
}

// ParseBoardKey splits a board key into its parts
func ParseBoardKey(key string) (user string, kind models.EntityKind, scope string, err error) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidBoardKey, key)
	}
	k, ok := models.ParseKind(parts[1])
	if !ok {
		return "", "", "", fmt.Errorf("%w: unknown kind in %q", ErrInvalidBoardKey, key)
	}
	return parts[0], k, parts[2], nil
}
