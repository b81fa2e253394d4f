package viewconfig

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/ianroy/makerflowPM/internal/models"
)

// ============================================================================
// ENCODING
// ============================================================================

type wireEntry struct {
	Alias        string            `json:"alias,omitempty"`
	Color        string            `json:"color,omitempty"`
	Hidden       bool              `json:"hidden,omitempty"`
	Collapsed    bool              `json:"collapsed,omitempty"`
	Required     bool              `json:"required,omitempty"`
	RestrictEdit bool              `json:"restrict_edit,omitempty"`
	RestrictView bool              `json:"restrict_view,omitempty"`
	MuteAssign   bool              `json:"mute_assign,omitempty"`
	Description  string            `json:"description,omitempty"`
	Filter       string            `json:"filter,omitempty"`
	Sort         string            `json:"sort,omitempty"`
	SortField    string            `json:"sort_field,omitempty"`
	GroupBy      string            `json:"group_by,omitempty"`
	ValueAliases map[string]string `json:"value_aliases,omitempty"`
	ValueColors  map[string]string `json:"value_colors,omitempty"`
}

type wireOverlay struct {
	ID     string            `json:"id"`
	Title  string            `json:"title"`
	After  int               `json:"after"`
	Type   string            `json:"type,omitempty"`
	Values map[string]string `json:"values,omitempty"`
}

type wireList struct {
	Columns        map[string]wireEntry `json:"columns,omitempty"`
	VisibleColumns []int                `json:"visible_columns,omitempty"`
	SortColumn     int                  `json:"sort_column"`
	SortDir        string               `json:"sort_dir,omitempty"`
	GroupBy        int                  `json:"group_by"`
	Overlays       []wireOverlay        `json:"overlays,omitempty"`
}

type wireKanban struct {
	Statuses map[string]wireEntry `json:"statuses,omitempty"`
}

type wireConfig struct {
	Version  int        `json:"version"`
	BoardKey string     `json:"board_key"`
	Kanban   wireKanban `json:"kanban"`
	List     wireList   `json:"list"`
	Search   string     `json:"search,omitempty"`
	Person   string     `json:"person,omitempty"`
	Mode     string     `json:"mode,omitempty"`
}

// Encode serializes a configuration into its persisted form
func Encode(cfg *ViewConfig) ([]byte, error) {
	w := wireConfig{
		Version:  CurrentVersion,
		BoardKey: cfg.BoardKey,
		Kanban:   wireKanban{Statuses: make(map[string]wireEntry, len(cfg.Kanban.Statuses))},
		List: wireList{
			Columns:        make(map[string]wireEntry, len(cfg.List.Columns)),
			VisibleColumns: cfg.List.VisibleColumns,
			SortColumn:     cfg.List.SortColumn,
			SortDir:        string(cfg.List.SortDir),
			GroupBy:        cfg.List.GroupBy,
		},
		Search: cfg.Search,
		Person: cfg.Person,
		Mode:   string(cfg.Mode),
	}
	for status, e := range cfg.Kanban.Statuses {
		if !e.IsZero() {
			w.Kanban.Statuses[status] = toWire(e)
		}
	}
	for idx, e := range cfg.List.Columns {
		if !e.IsZero() {
			w.List.Columns[strconv.Itoa(idx)] = toWire(e)
		}
	}
	for _, o := range cfg.List.Overlays {
		wo := wireOverlay{ID: o.ID, Title: o.Title, After: o.After, Type: string(o.Type)}
		if len(o.Values) > 0 {
			wo.Values = make(map[string]string, len(o.Values))
			for id, v := range o.Values {
				wo.Values[strconv.FormatInt(id, 10)] = v
			}
		}
		w.List.Overlays = append(w.List.Overlays, wo)
	}

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to encode view configuration: %w", err)
	}
	return data, nil
}

func toWire(e *Entry) wireEntry {
	return wireEntry{
		Alias:        e.Alias,
		Color:        e.Color,
		Hidden:       e.Hidden,
		Collapsed:    e.Collapsed,
		Required:     e.Required,
		RestrictEdit: e.RestrictEdit,
		RestrictView: e.RestrictView,
		MuteAssign:   e.MuteAssign,
		Description:  e.Description,
		Filter:       e.Filter,
		Sort:         string(e.Sort),
		SortField:    e.SortField,
		GroupBy:      e.GroupBy,
		ValueAliases: e.ValueAliases,
		ValueColors:  e.ValueColors,
	}
}

// ============================================================================
// TOLERANT DECODING
// ============================================================================

// decoder reads one JSON object field by field. A field with the wrong shape
// is skipped and remembered instead of failing the whole object.
type decoder struct {
	dropped []string
}

type object struct {
	d      *decoder
	path   string
	fields map[string]json.RawMessage
}

func (d *decoder) object(path string, raw json.RawMessage) (object, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		d.dropped = append(d.dropped, path)
		return object{}, false
	}
	return object{d: d, path: path, fields: fields}, true
}

func (o object) field(key string, dst any) {
	raw, ok := o.fields[key]
	if !ok || string(raw) == "null" {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		o.d.dropped = append(o.d.dropped, o.path+"."+key)
	}
}

func (o object) child(key string) (object, bool) {
	raw, ok := o.fields[key]
	if !ok || string(raw) == "null" {
		return object{}, false
	}
	return o.d.object(o.path+"."+key, raw)
}

func (o object) keys() []string {
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode reads a persisted configuration. It always returns a usable
// configuration; the error, when non-nil, is a *ConfigCorrupt describing
// what was discarded.
func Decode(boardKey string, blob []byte) (*ViewConfig, error) {
	cfg := Default(boardKey)
	if len(blob) == 0 {
		return cfg, nil
	}

	d := &decoder{}
	root, ok := d.object("$", blob)
	if !ok {
		return cfg, &ConfigCorrupt{BoardKey: boardKey, Err: fmt.Errorf("blob is not a JSON object")}
	}

	root.field("version", &cfg.Version)
	root.field("search", &cfg.Search)
	root.field("person", &cfg.Person)
	var mode string
	root.field("mode", &mode)
	if m := Mode(mode); m == ModeKanban || m == ModeList {
		cfg.Mode = m
	}

	if kanban, ok := root.child("kanban"); ok {
		if statuses, ok := kanban.child("statuses"); ok {
			for _, status := range statuses.keys() {
				if e, ok := statuses.child(status); ok {
					cfg.Kanban.Statuses[status] = decodeEntry(e)
				}
			}
		}
	}

	if list, ok := root.child("list"); ok {
		if cols, ok := list.child("columns"); ok {
			for _, key := range cols.keys() {
				idx, err := strconv.Atoi(key)
				if err != nil || idx < 0 {
					d.dropped = append(d.dropped, cols.path+"."+key)
					continue
				}
				if e, ok := cols.child(key); ok {
					cfg.List.Columns[idx] = decodeEntry(e)
				}
			}
		}
		list.field("visible_columns", &cfg.List.VisibleColumns)
		list.field("sort_column", &cfg.List.SortColumn)
		var dir string
		list.field("sort_dir", &dir)
		cfg.List.SortDir = SortDir(dir)
		list.field("group_by", &cfg.List.GroupBy)

		var overlays []json.RawMessage
		list.field("overlays", &overlays)
		for i, raw := range overlays {
			o, ok := d.object(fmt.Sprintf("%s.overlays[%d]", list.path, i), raw)
			if !ok {
				continue
			}
			cfg.List.Overlays = append(cfg.List.Overlays, decodeOverlay(o))
		}
	}

	normalizeColors(cfg)
	cfg.Version = CurrentVersion
	cfg.BoardKey = boardKey

	if len(d.dropped) > 0 {
		return cfg, &ConfigCorrupt{BoardKey: boardKey, Dropped: d.dropped}
	}
	return cfg, nil
}

func decodeEntry(o object) *Entry {
	e := &Entry{}
	o.field("alias", &e.Alias)
	o.field("color", &e.Color)
	o.field("hidden", &e.Hidden)
	o.field("collapsed", &e.Collapsed)
	o.field("required", &e.Required)
	o.field("restrict_edit", &e.RestrictEdit)
	o.field("restrict_view", &e.RestrictView)
	o.field("mute_assign", &e.MuteAssign)
	o.field("description", &e.Description)
	o.field("filter", &e.Filter)
	var dir string
	o.field("sort", &dir)
	e.Sort = SortDir(dir)
	o.field("sort_field", &e.SortField)
	o.field("group_by", &e.GroupBy)
	o.field("value_aliases", &e.ValueAliases)
	o.field("value_colors", &e.ValueColors)
	return e
}

func decodeOverlay(o object) OverlayColumn {
	ov := OverlayColumn{}
	o.field("id", &ov.ID)
	o.field("title", &ov.Title)
	o.field("after", &ov.After)
	var typ string
	o.field("type", &typ)
	ov.Type = models.FieldType(typ)

	var values map[string]string
	o.field("values", &values)
	if len(values) > 0 {
		ov.Values = make(map[int64]string, len(values))
		for k, v := range values {
			id, err := strconv.ParseInt(k, 10, 64)
			if err != nil {
				continue
			}
			ov.Values[id] = v
		}
	}
	return ov
}
