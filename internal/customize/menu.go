package customize

import "github.com/ianroy/makerflowPM/internal/viewconfig"

// Action names one entry of a header's contextual menu
type Action string

const (
	ActionRename         Action = "rename"
	ActionEditLabels     Action = "edit-labels"
	ActionColor          Action = "color"
	ActionFilter         Action = "filter"
	ActionSortAsc        Action = "sort-asc"
	ActionSortDesc       Action = "sort-desc"
	ActionGroupBy        Action = "group-by"
	ActionCollapse       Action = "collapse"
	ActionHide           Action = "hide"
	ActionRestrictView   Action = "restrict-view"
	ActionRequired       Action = "required"
	ActionRestrictEdit   Action = "restrict-edit"
	ActionMuteAssign     Action = "mute-assign"
	ActionDescription    Action = "description"
	ActionDuplicate      Action = "duplicate"
	ActionAddColumnRight Action = "add-column"
	ActionChangeType     Action = "change-type"
	ActionClear          Action = "clear"
	ActionFillDown       Action = "fill-down"
)

// MenuItem is one rendered menu entry
type MenuItem struct {
	Action Action
	Label  string
}

var sharedMenu = []MenuItem{
	{ActionRename, "Rename"},
	{ActionEditLabels, "Edit labels"},
	{ActionColor, "Color"},
	{ActionFilter, "Filter"},
	{ActionSortAsc, "Sort ascending"},
	{ActionSortDesc, "Sort descending"},
	{ActionGroupBy, "Group by"},
	{ActionCollapse, "Collapse"},
	{ActionHide, "Hide"},
	{ActionRestrictView, "Restrict view"},
}

var listOnlyMenu = []MenuItem{
	{ActionRequired, "Required"},
}

var tailMenu = []MenuItem{
	{ActionRestrictEdit, "Restrict edit"},
	{ActionMuteAssign, "Mute assign"},
	{ActionDescription, "Description"},
}

var structuralMenu = []MenuItem{
	{ActionDuplicate, "Duplicate"},
	{ActionAddColumnRight, "Add column to right"},
	{ActionChangeType, "Change type"},
	{ActionClear, "Clear"},
	{ActionFillDown, "Fill down"},
}

// Menu returns the ordered actions of a header menu in a layout. The
// structural column actions exist only in List.
func Menu(scope viewconfig.Scope) []MenuItem {
	items := append([]MenuItem(nil), sharedMenu...)
	if scope == viewconfig.ScopeList {
		items = append(items, listOnlyMenu...)
	}
	items = append(items, tailMenu...)
	if scope == viewconfig.ScopeList {
		items = append(items, structuralMenu...)
	}
	return items
}
