package customize

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// Target addresses one Kanban status header or one List column
type Target struct {
	Scope  viewconfig.Scope
	Status string // Kanban
	Column int    // List column index
}

// KanbanStatus targets a status header
func KanbanStatus(status string) Target {
	return Target{Scope: viewconfig.ScopeKanban, Status: status}
}

// ListColumn targets a List column by index
func ListColumn(idx int) Target {
	return Target{Scope: viewconfig.ScopeList, Column: idx}
}

// Command is one customization action. Commands are applied to a copy of
// the configuration; an error leaves the board's configuration untouched.
type Command interface {
	Name() string
	apply(e *env) error
}

// env is what a command may read and change
type env struct {
	cfg     *viewconfig.ViewConfig
	schema  models.Schema
	records []*models.Record
	lookups *models.Lookups
	effects *Effects
}

func (e *env) input() projection.Input {
	return projection.NewInput(e.records, e.schema.Kind, e.cfg, e.lookups)
}

// entry returns the mutable entry of a target after checking it exists
func (e *env) entry(t Target) (*viewconfig.Entry, error) {
	switch t.Scope {
	case viewconfig.ScopeKanban:
		if strings.TrimSpace(t.Status) == "" {
			return nil, fmt.Errorf("%w: empty status", ErrInvalidTarget)
		}
		return e.cfg.StatusEntry(t.Status), nil
	case viewconfig.ScopeList:
		if t.Column < 0 || t.Column >= e.cfg.ColumnCount(e.schema) {
			return nil, fmt.Errorf("%w: column %d", ErrInvalidTarget, t.Column)
		}
		return e.cfg.ColumnEntry(t.Column), nil
	}
	return nil, fmt.Errorf("%w: scope %q", ErrInvalidTarget, t.Scope)
}

func (e *env) listEntry(t Target) (*viewconfig.Entry, error) {
	if t.Scope != viewconfig.ScopeList {
		return nil, ErrWrongScope
	}
	return e.entry(t)
}

// overlay returns the added column a List target points at
func (e *env) overlay(t Target) (*viewconfig.OverlayColumn, error) {
	if _, err := e.listEntry(t); err != nil {
		return nil, err
	}
	o, ok := e.cfg.Overlay(e.schema, t.Column)
	if !ok {
		return nil, ErrNotOverlay
	}
	return o, nil
}

// label is the header text of a List column
func (e *env) label(idx int) string {
	if en := e.cfg.Column(idx); en != nil && en.Alias != "" {
		return en.Alias
	}
	if idx < len(e.schema.Fields) {
		return e.schema.Fields[idx].Label
	}
	if o, ok := e.cfg.Overlay(e.schema, idx); ok && o.Title != "" {
		return o.Title
	}
	return fmt.Sprintf("Column %d", idx+1)
}

// show adds a column index to an explicit visible set
func (e *env) show(idx int) {
	if len(e.cfg.List.VisibleColumns) == 0 {
		return
	}
	for _, v := range e.cfg.List.VisibleColumns {
		if v == idx {
			return
		}
	}
	e.cfg.List.VisibleColumns = append(e.cfg.List.VisibleColumns, idx)
}

// Rename sets the header alias. An empty alias restores the default label.
type Rename struct {
	Target Target
	Alias  string
}

func (Rename) Name() string { return "rename" }

func (c Rename) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	en.Alias = strings.TrimSpace(c.Alias)
	return nil
}

// SetLabels edits display labels. On a Kanban status it sets the header alias
// and color from the entries keyed by the status; on a List column it sets
// the per-value alias and color maps, keyed by values present in the column.
type SetLabels struct {
	Target  Target
	Aliases map[string]string
	Colors  map[string]string
}

func (SetLabels) Name() string { return "edit-labels" }

func (c SetLabels) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	if c.Target.Scope == viewconfig.ScopeKanban {
		if alias, ok := c.Aliases[c.Target.Status]; ok {
			en.Alias = strings.TrimSpace(alias)
		}
		if color, ok := c.Colors[c.Target.Status]; ok {
			if norm, valid := viewconfig.NormalizeColor(color); valid {
				en.Color = norm
			} else if color == "" {
				en.Color = ""
			}
		}
		return nil
	}

	present := make(map[string]bool)
	for _, rec := range e.records {
		present[projection.CellValue(e.schema, e.cfg, rec, c.Target.Column)] = true
	}
	aliases := make(map[string]string)
	colors := make(map[string]string)
	for value := range present {
		if alias := strings.TrimSpace(c.Aliases[value]); alias != "" {
			aliases[value] = alias
		}
		if norm, ok := viewconfig.NormalizeColor(c.Colors[value]); ok {
			colors[value] = norm
		}
	}
	en.ValueAliases = aliases
	en.ValueColors = colors
	return nil
}

// SetColor sets the header color. Invalid colors are ignored; empty clears.
type SetColor struct {
	Target Target
	Color  string
}

func (SetColor) Name() string { return "color" }

func (c SetColor) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	if c.Color == "" {
		en.Color = ""
		return nil
	}
	if norm, ok := viewconfig.NormalizeColor(c.Color); ok {
		en.Color = norm
	}
	return nil
}

// SetFilter sets a substring filter. Empty clears it.
type SetFilter struct {
	Target Target
	Text   string
}

func (SetFilter) Name() string { return "filter" }

func (c SetFilter) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	en.Filter = strings.TrimSpace(c.Text)
	return nil
}

// SetSort sorts a List by the target column, replacing any other sort, or
// sorts the cards of one Kanban status by Field (title when empty).
type SetSort struct {
	Target Target
	Dir    viewconfig.SortDir
	Field  string // Kanban only
}

func (SetSort) Name() string { return "sort" }

func (c SetSort) apply(e *env) error {
	if !c.Dir.Valid() {
		return fmt.Errorf("%w: sort %q", ErrInvalidValue, c.Dir)
	}
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	if c.Target.Scope == viewconfig.ScopeKanban {
		if c.Field != "" {
			if _, ok := e.schema.Field(c.Field); !ok {
				return fmt.Errorf("%w: field %q", ErrInvalidValue, c.Field)
			}
		}
		en.Sort = c.Dir
		en.SortField = c.Field
		if c.Dir == viewconfig.SortNone {
			en.SortField = ""
		}
		return nil
	}
	if c.Dir == viewconfig.SortNone {
		if e.cfg.List.SortColumn == c.Target.Column {
			e.cfg.List.SortColumn = -1
			e.cfg.List.SortDir = viewconfig.SortNone
		}
		return nil
	}
	e.cfg.List.SortColumn = c.Target.Column
	e.cfg.List.SortDir = c.Dir
	return nil
}

// SetGroupBy groups a List by the target column, or the cards of a Kanban
// status by Field. Off clears grouping.
type SetGroupBy struct {
	Target Target
	Field  string // Kanban only
	Off    bool
}

func (SetGroupBy) Name() string { return "group-by" }

func (c SetGroupBy) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	if c.Target.Scope == viewconfig.ScopeKanban {
		if c.Off {
			en.GroupBy = ""
			return nil
		}
		if _, ok := e.schema.Field(c.Field); !ok {
			return fmt.Errorf("%w: field %q", ErrInvalidValue, c.Field)
		}
		en.GroupBy = c.Field
		return nil
	}
	if c.Off {
		if e.cfg.List.GroupBy == c.Target.Column {
			e.cfg.List.GroupBy = -1
		}
		return nil
	}
	e.cfg.List.GroupBy = c.Target.Column
	return nil
}

// SetCollapsed minimizes a status or column
type SetCollapsed struct {
	Target Target
	On     bool
}

func (SetCollapsed) Name() string { return "collapse" }

func (c SetCollapsed) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	en.Collapsed = c.On
	return nil
}

// SetHidden removes a status or column from view
type SetHidden struct {
	Target Target
	On     bool
}

func (SetHidden) Name() string { return "hide" }

func (c SetHidden) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	en.Hidden = c.On
	if !c.On && c.Target.Scope == viewconfig.ScopeList {
		e.show(c.Target.Column)
	}
	return nil
}

// SetRestrictView removes a status or column from view and from every
// filter, sort and search scope
type SetRestrictView struct {
	Target Target
	On     bool
}

func (SetRestrictView) Name() string { return "restrict-view" }

func (c SetRestrictView) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	en.RestrictView = c.On
	if !c.On && c.Target.Scope == viewconfig.ScopeList {
		e.show(c.Target.Column)
	}
	return nil
}

// SetRestrictEdit disables inline editing without hiding anything
type SetRestrictEdit struct {
	Target Target
	On     bool
}

func (SetRestrictEdit) Name() string { return "restrict-edit" }

func (c SetRestrictEdit) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	en.RestrictEdit = c.On
	return nil
}

// SetRequired blocks inline edits that would clear a List column
type SetRequired struct {
	Target Target
	On     bool
}

func (SetRequired) Name() string { return "required" }

func (c SetRequired) apply(e *env) error {
	en, err := e.listEntry(c.Target)
	if err != nil {
		return err
	}
	en.Required = c.On
	return nil
}

// SetMuteAssign mutes assignment for a status or column: cards in a muted
// status leave out their person values and muted headers carry a marker
type SetMuteAssign struct {
	Target Target
	On     bool
}

func (SetMuteAssign) Name() string { return "mute-assign" }

func (c SetMuteAssign) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	en.MuteAssign = c.On
	return nil
}

// SetDescription sets the help text shown under a header
type SetDescription struct {
	Target Target
	Text   string
}

func (SetDescription) Name() string { return "description" }

func (c SetDescription) apply(e *env) error {
	en, err := e.entry(c.Target)
	if err != nil {
		return err
	}
	en.Description = strings.TrimSpace(c.Text)
	return nil
}

// DuplicateColumn copies the current cell values of a List column into a
// new added column to its right
type DuplicateColumn struct {
	Target Target
}

func (DuplicateColumn) Name() string { return "duplicate" }

func (c DuplicateColumn) apply(e *env) error {
	if _, err := e.listEntry(c.Target); err != nil {
		return err
	}
	typ := models.FieldText
	if c.Target.Column < len(e.schema.Fields) {
		typ = e.schema.Fields[c.Target.Column].Type
	} else if o, ok := e.cfg.Overlay(e.schema, c.Target.Column); ok {
		typ = o.Type
	}

	values := make(map[int64]string, len(e.records))
	for _, rec := range e.records {
		if v := projection.CellValue(e.schema, e.cfg, rec, c.Target.Column); v != "" {
			values[rec.ID] = v
		}
	}
	e.addOverlay(viewconfig.OverlayColumn{
		Title:  e.label(c.Target.Column) + " (copy)",
		After:  c.Target.Column,
		Type:   typ,
		Values: values,
	})
	return nil
}

// AddColumnRight inserts a blank text column to the right of the target
type AddColumnRight struct {
	Target Target
	Title  string
}

func (AddColumnRight) Name() string { return "add-column" }

func (c AddColumnRight) apply(e *env) error {
	if _, err := e.listEntry(c.Target); err != nil {
		return err
	}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = fmt.Sprintf("Column %d", e.cfg.ColumnCount(e.schema)+1)
	}
	e.addOverlay(viewconfig.OverlayColumn{
		Title:  title,
		After:  c.Target.Column,
		Type:   models.FieldText,
		Values: make(map[int64]string),
	})
	return nil
}

func (e *env) addOverlay(o viewconfig.OverlayColumn) {
	o.ID = "col-" + uuid.NewString()[:8]
	idx := e.cfg.ColumnCount(e.schema)
	e.cfg.List.Overlays = append(e.cfg.List.Overlays, o)
	e.show(idx)
	e.effects.Added = idx
}

// ChangeColumnType changes how an added column is edited and compared.
// Real columns take their type from the record service.
type ChangeColumnType struct {
	Target Target
	Type   models.FieldType
}

func (ChangeColumnType) Name() string { return "change-type" }

func (c ChangeColumnType) apply(e *env) error {
	switch c.Type {
	case models.FieldText, models.FieldNumber, models.FieldDate:
	default:
		return fmt.Errorf("%w: type %q", ErrInvalidValue, c.Type)
	}
	o, err := e.overlay(c.Target)
	if err != nil {
		return err
	}
	o.Type = c.Type
	return nil
}

// ClearColumn blanks every visible cell of a List column. On a real column
// the blanks are returned as edits for the synchronizer, which still
// enforces required and restrict-edit rules per cell.
type ClearColumn struct {
	Target Target
}

func (ClearColumn) Name() string { return "clear" }

func (c ClearColumn) apply(e *env) error {
	if _, err := e.listEntry(c.Target); err != nil {
		return err
	}
	ids := projection.List(e.input()).VisibleIDs()
	if o, ok := e.cfg.Overlay(e.schema, c.Target.Column); ok {
		for _, id := range ids {
			delete(o.Values, id)
		}
		return nil
	}

	field := e.schema.Fields[c.Target.Column].Key
	for _, rec := range e.records {
		if rec.Get(field) != "" && contains(ids, rec.ID) {
			e.effects.Edits = append(e.effects.Edits, quickedit.Edit{
				RecordID: rec.ID, Field: field, Value: "", Scope: viewconfig.ScopeList,
			})
		}
	}
	return nil
}

// FillDown copies the first visible row's value into every visible row below it
type FillDown struct {
	Target Target
}

func (FillDown) Name() string { return "fill-down" }

func (c FillDown) apply(e *env) error {
	if _, err := e.listEntry(c.Target); err != nil {
		return err
	}
	ids := projection.List(e.input()).VisibleIDs()
	if len(ids) < 2 {
		return nil
	}
	byID := make(map[int64]*models.Record, len(e.records))
	for _, rec := range e.records {
		byID[rec.ID] = rec
	}
	first := projection.CellValue(e.schema, e.cfg, byID[ids[0]], c.Target.Column)

	if o, ok := e.cfg.Overlay(e.schema, c.Target.Column); ok {
		if o.Values == nil {
			o.Values = make(map[int64]string)
		}
		for _, id := range ids[1:] {
			if first == "" {
				delete(o.Values, id)
			} else {
				o.Values[id] = first
			}
		}
		return nil
	}

	field := e.schema.Fields[c.Target.Column].Key
	for _, id := range ids[1:] {
		if byID[id].Get(field) != first {
			e.effects.Edits = append(e.effects.Edits, quickedit.Edit{
				RecordID: id, Field: field, Value: first, Scope: viewconfig.ScopeList,
			})
		}
	}
	return nil
}

// SetSearch sets the board-wide search shared by both layouts
type SetSearch struct {
	Text string
}

func (SetSearch) Name() string { return "search" }

func (c SetSearch) apply(e *env) error {
	e.cfg.Search = strings.TrimSpace(c.Text)
	return nil
}

// SetPerson restricts both layouts to records referencing a person
type SetPerson struct {
	Person string
}

func (SetPerson) Name() string { return "person" }

func (c SetPerson) apply(e *env) error {
	e.cfg.Person = strings.TrimSpace(c.Person)
	return nil
}

// SetVisibleColumns replaces the List column chooser selection. Empty shows all.
type SetVisibleColumns struct {
	Columns []int
}

func (SetVisibleColumns) Name() string { return "visible-columns" }

func (c SetVisibleColumns) apply(e *env) error {
	e.cfg.List.VisibleColumns = append([]int(nil), c.Columns...)
	return nil
}

// SetViewMode switches between the Kanban and List layouts
type SetViewMode struct {
	Mode viewconfig.Mode
}

func (SetViewMode) Name() string { return "view-mode" }

func (c SetViewMode) apply(e *env) error {
	if c.Mode != viewconfig.ModeKanban && c.Mode != viewconfig.ModeList {
		return fmt.Errorf("%w: mode %q", ErrInvalidValue, c.Mode)
	}
	e.cfg.Mode = c.Mode
	return nil
}

// Reset clears one namespace, or everything except the view mode when
// Scope is empty
type Reset struct {
	Scope viewconfig.Scope
}

func (Reset) Name() string { return "reset" }

func (c Reset) apply(e *env) error {
	def := viewconfig.Default(e.cfg.BoardKey)
	switch c.Scope {
	case viewconfig.ScopeKanban:
		e.cfg.Kanban = def.Kanban
	case viewconfig.ScopeList:
		e.cfg.List = def.List
	case "":
		def.Mode = e.cfg.Mode
		*e.cfg = *def
	default:
		return fmt.Errorf("%w: scope %q", ErrInvalidTarget, c.Scope)
	}
	return nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
