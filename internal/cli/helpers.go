package cli

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColorHex validates that a color string is in valid hex format #RRGGBB
func ValidateColorHex(color string) error {
	if !hexColor.MatchString(color) {
		return Usagef("color must be in hex format #RRGGBB (e.g., #FF0000), got: %s", color)
	}
	return nil
}

// ParseKind maps a kind name to its entity kind
func ParseKind(name string) (models.EntityKind, error) {
	kind, ok := models.ParseKind(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		names := make([]string, len(models.AllKinds))
		for i, k := range models.AllKinds {
			names[i] = string(k)
		}
		return "", Usagef("invalid kind '%s' (must be: %s)", name, strings.Join(names, ", "))
	}
	return kind, nil
}

// ParseMode maps a view name to a board mode
func ParseMode(name string) (viewconfig.Mode, error) {
	switch viewconfig.Mode(strings.ToLower(name)) {
	case viewconfig.ModeKanban:
		return viewconfig.ModeKanban, nil
	case viewconfig.ModeList:
		return viewconfig.ModeList, nil
	}
	return "", Usagef("invalid view '%s' (must be: kanban, list)", name)
}

// ParseSortDir maps a direction name to a sort direction; "none" clears
func ParseSortDir(name string) (viewconfig.SortDir, error) {
	switch strings.ToLower(name) {
	case "asc":
		return viewconfig.SortAsc, nil
	case "desc":
		return viewconfig.SortDesc, nil
	case "", "none":
		return viewconfig.SortNone, nil
	}
	return "", Usagef("invalid sort direction '%s' (must be: asc, desc, none)", name)
}

// ColumnIndex resolves a List column given as a field key, a header label or
// an index into the board's column addressing
func ColumnIndex(schema models.Schema, cfg *viewconfig.ViewConfig, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if idx := schema.FieldIndex(ref); idx >= 0 {
		return idx, nil
	}
	if idx, err := strconv.Atoi(ref); err == nil {
		if idx >= 0 && idx < cfg.ColumnCount(schema) {
			return idx, nil
		}
		return -1, Usagef("column %d is out of range", idx)
	}
	for i, f := range schema.Fields {
		if strings.EqualFold(f.Label, ref) {
			return i, nil
		}
		if e := cfg.Column(i); e != nil && strings.EqualFold(e.Alias, ref) {
			return i, nil
		}
	}
	for i, o := range cfg.List.Overlays {
		if strings.EqualFold(o.Title, ref) || o.ID == ref {
			return len(schema.Fields) + i, nil
		}
	}
	return -1, Usagef("unknown column '%s'", ref)
}

// Confirm asks a yes/no question on stdout and reads the answer from stdin
func Confirm(question string) bool {
	fmt.Printf("%s (y/N): ", question)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		slog.Debug("failed to read confirmation", "error", err)
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
