package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/ianroy/makerflowPM/internal/config"
)

// keyMap holds the bindings of normal mode, built from the configured
// key mappings. Arrow keys always work alongside the configured keys.
type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	MoveLeft      key.Binding
	MoveRight     key.Binding
	CyclePriority key.Binding
	Edit          key.Binding
	Delete        key.Binding

	Search   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Hide     key.Binding
	Collapse key.Binding
	Rename   key.Binding
	Reset    key.Binding

	Toggle  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
	}
	return keyMap{
		Left:  bind("previous column", km.PrevColumn, "left"),
		Right: bind("next column", km.NextColumn, "right"),
		Up:    bind("previous row", km.PrevRow, "up"),
		Down:  bind("next row", km.NextRow, "down"),

		MoveLeft:      bind("move card to the previous status", km.MoveCardLeft, "shift+left"),
		MoveRight:     bind("move card to the next status", km.MoveCardRight, "shift+right"),
		CyclePriority: bind("cycle priority", km.CyclePriority),
		Edit:          bind("edit title or cell", km.EditField, "enter"),
		Delete:        bind("delete record", km.DeleteRecord),

		Search:   bind("search the board", km.Search),
		Filter:   bind("filter status or column", km.Filter),
		Sort:     bind("cycle sort", km.Sort),
		Hide:     bind("hide status or column", km.Hide),
		Collapse: bind("collapse status or column", km.Collapse),
		Rename:   bind("rename header", km.Rename),
		Reset:    bind("reset this layout", km.ResetView),

		Toggle:  bind("switch Kanban / List", km.ToggleView, "tab"),
		Refresh: bind("reload records", km.Refresh),
		Help:    bind("toggle help", km.ShowHelp),
		Quit:    bind("quit", km.Quit, "ctrl+c"),
	}
}

// helpGroups returns the bindings shown on the help screen, by section
func (k keyMap) helpGroups() []helpGroup {
	return []helpGroup{
		{Title: "Navigation", Bindings: []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Toggle}},
		{Title: "Records", Bindings: []key.Binding{k.MoveLeft, k.MoveRight, k.CyclePriority, k.Edit, k.Delete}},
		{Title: "View", Bindings: []key.Binding{k.Search, k.Filter, k.Sort, k.Hide, k.Collapse, k.Rename, k.Reset}},
		{Title: "Other", Bindings: []key.Binding{k.Refresh, k.Help, k.Quit}},
	}
}
