package projection

import (
	"strings"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// Input is everything a projection reads. Records are expected in load order.
type Input struct {
	Records     []*models.Record
	Schema      models.Schema
	Statuses    []string // status set of the kind, in column order
	Config      *viewconfig.ViewConfig
	Permissions models.Permissions
}

// NewInput builds an Input with the status set taken from lookups
func NewInput(records []*models.Record, kind models.EntityKind, cfg *viewconfig.ViewConfig, lookups *models.Lookups) Input {
	return Input{
		Records:     records,
		Schema:      models.SchemaFor(kind),
		Statuses:    lookups.StatusesFor(kind),
		Config:      cfg,
		Permissions: lookups.PermissionsFor(kind),
	}
}

// fieldRestricted reports whether column i is out of scope because it is
// restrict-view
func (in Input) fieldRestricted(i int) bool {
	e := in.Config.Column(i)
	return e != nil && e.RestrictView
}

// statusRestricted reports whether a Kanban status is restrict-view
func (in Input) statusRestricted(status string) bool {
	e := in.Config.Status(status)
	return e != nil && e.RestrictView
}

// scopedValues returns the values of every in-scope field of a record
func (in Input) scopedValues(rec *models.Record) []string {
	out := make([]string, 0, len(in.Schema.Fields))
	for i, f := range in.Schema.Fields {
		if in.fieldRestricted(i) {
			continue
		}
		out = append(out, rec.Get(f.Key))
	}
	return out
}

// searchText is the serialized text a record is matched against
func (in Input) searchText(rec *models.Record) string {
	return strings.Join(in.scopedValues(rec), " ")
}

// boardVisible applies the board-global rules shared by both layouts: the
// status must belong to the kind's set, and the search string and selected
// person must match. Kanban status settings are applied by the Kanban
// projection only.
func (in Input) boardVisible(rec *models.Record) bool {
	if !in.hasStatus(rec.Status()) {
		return false
	}
	if !matches(in.searchText(rec), in.Config.Search) {
		return false
	}
	if person := strings.TrimSpace(in.Config.Person); person != "" {
		found := false
		for _, v := range in.scopedValues(rec) {
			if strings.EqualFold(strings.TrimSpace(v), person) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (in Input) hasStatus(status string) bool {
	for _, st := range in.Statuses {
		if st == status {
			return true
		}
	}
	return false
}

// groupRuns inserts a separator before the first item of every contiguous
// run of equal keys. Items must already be in render order.
func groupRuns[T any](items []T, key func(T) string, separator func(string) T) []T {
	out := make([]T, 0, len(items)*2)
	prev, first := "", true
	for _, it := range items {
		k := key(it)
		if first || k != prev {
			out = append(out, separator(k))
			prev, first = k, false
		}
		out = append(out, it)
	}
	return out
}
