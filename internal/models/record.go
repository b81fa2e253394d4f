package models

import "time"

// Record is one business entity as served by the record service.
// Field values are carried as display strings; the record service is the
// authority on their types.
type Record struct {
	ID        int64
	Kind      EntityKind
	Fields    map[string]string
	UpdatedAt time.Time
}

// NewRecord creates a record with an initialized field map
func NewRecord(id int64, kind EntityKind) *Record {
	return &Record{
		ID:     id,
		Kind:   kind,
		Fields: make(map[string]string),
	}
}

// Get returns the value of a field, or "" when unset
func (r *Record) Get(key string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[key]
}

// Set assigns a field value and returns the previous value
func (r *Record) Set(key, value string) string {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	prev := r.Fields[key]
	r.Fields[key] = value
	return prev
}

// Status returns the value of the kind's status field
func (r *Record) Status() string {
	return r.Get(SchemaFor(r.Kind).StatusField)
}

// Title returns the value of the kind's title field
func (r *Record) Title() string {
	return r.Get(SchemaFor(r.Kind).TitleField)
}

// Clone returns a deep copy so callers can hold a snapshot while the cache mutates
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		ID:        r.ID,
		Kind:      r.Kind,
		Fields:    make(map[string]string, len(r.Fields)),
		UpdatedAt: r.UpdatedAt,
	}
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// GetID lets the CLI quiet formatter print record IDs
func (r *Record) GetID() int {
	return int(r.ID)
}
