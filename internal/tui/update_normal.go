package tui

import (
	"fmt"
	"slices"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/tui/state"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

const priorityField = "priority"

// handleNormalMode dispatches keyboard input in normal mode
func (m *Model) handleNormalMode(msg tea.KeyPressMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Help):
		m.UiState.SetMode(state.HelpMode)
		return nil
	case key.Matches(msg, k.Toggle):
		next := viewconfig.ModeList
		if m.layout() == viewconfig.ScopeList {
			next = viewconfig.ModeKanban
		}
		return m.dispatch(customize.SetViewMode{Mode: next})
	case key.Matches(msg, k.Refresh):
		m.NotificationState.Add(state.LevelInfo, "Reloading…")
		return m.dispatch(board.Refresh{})

	case key.Matches(msg, k.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, k.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, k.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, k.Down):
		m.moveCursor(0, 1)

	case key.Matches(msg, k.MoveLeft):
		return m.moveCard(-1)
	case key.Matches(msg, k.MoveRight):
		return m.moveCard(1)
	case key.Matches(msg, k.CyclePriority):
		return m.cyclePriority()
	case key.Matches(msg, k.Edit):
		return m.startEdit()
	case key.Matches(msg, k.Delete):
		if _, ok := m.selectedRecord(); ok {
			m.UiState.SetMode(state.DeleteConfirmMode)
		}

	case key.Matches(msg, k.Search):
		return m.startInput(state.ActionSearch, "Search:", m.Board.Config().Search)
	case key.Matches(msg, k.Filter):
		if t, ok := m.target(); ok {
			return m.startInput(state.ActionFilter, "Filter "+m.targetLabel()+":", m.entry(t).Filter)
		}
	case key.Matches(msg, k.Rename):
		if t, ok := m.target(); ok {
			return m.startInput(state.ActionRename, "Rename "+m.targetLabel()+" (empty restores):", m.entry(t).Alias)
		}
	case key.Matches(msg, k.Sort):
		return m.cycleSort()
	case key.Matches(msg, k.Hide):
		if t, ok := m.target(); ok {
			m.NotificationState.Add(state.LevelInfo, fmt.Sprintf("Hid %s. Press %s to reset the layout.", m.targetLabel(), m.Config.KeyMappings.ResetView))
			return m.dispatch(customize.SetHidden{Target: t, On: true})
		}
	case key.Matches(msg, k.Collapse):
		return m.toggleCollapse()
	case key.Matches(msg, k.Reset):
		return m.dispatch(customize.Reset{Scope: m.layout()})
	}
	return nil
}

// moveCursor moves the selection of the current layout
func (m *Model) moveCursor(dCol, dRow int) {
	if m.layout() == viewconfig.ScopeList {
		c := m.UiState.List()
		c.Column += dCol
		c.Row += dRow
		m.UiState.SetList(clampList(c, m.Board.List()))
		return
	}
	c := m.UiState.Kanban()
	if dCol != 0 {
		c.Row = 0
	}
	c.Column += dCol
	c.Row += dRow
	m.UiState.SetKanban(clampKanban(c, m.Board.Kanban()))
}

// clampCursors keeps both cursors inside the current projections
func (m *Model) clampCursors() {
	m.UiState.SetKanban(clampKanban(m.UiState.Kanban(), m.Board.Kanban()))
	m.UiState.SetList(clampList(m.UiState.List(), m.Board.List()))
}

func clampKanban(c state.Cursor, view projection.KanbanView) state.Cursor {
	return state.Clamp(c, len(view.Columns), func(col int) int { return view.Columns[col].Count })
}

func clampList(c state.Cursor, view projection.ListView) state.Cursor {
	rows := len(view.VisibleIDs())
	return state.Clamp(c, len(view.Columns), func(int) int { return rows })
}

// selectedRecord returns the record under the cursor of the current layout
func (m Model) selectedRecord() (*models.Record, bool) {
	if m.layout() == viewconfig.ScopeList {
		view := m.Board.List()
		c := clampList(m.UiState.List(), view)
		ids := view.VisibleIDs()
		if c.Row >= len(ids) {
			return nil, false
		}
		return m.Board.Record(ids[c.Row])
	}
	view := m.Board.Kanban()
	c := clampKanban(m.UiState.Kanban(), view)
	if c.Column >= len(view.Columns) {
		return nil, false
	}
	cards := view.Columns[c.Column].Cards()
	if c.Row >= len(cards) {
		return nil, false
	}
	return cards[c.Row], true
}

// target returns the status or column under the cursor
func (m Model) target() (customize.Target, bool) {
	if m.layout() == viewconfig.ScopeList {
		view := m.Board.List()
		c := clampList(m.UiState.List(), view)
		if c.Column >= len(view.Columns) {
			return customize.Target{}, false
		}
		return customize.ListColumn(view.Columns[c.Column].Index), true
	}
	view := m.Board.Kanban()
	c := clampKanban(m.UiState.Kanban(), view)
	if c.Column >= len(view.Columns) {
		return customize.Target{}, false
	}
	return customize.KanbanStatus(view.Columns[c.Column].Status), true
}

// targetLabel is the header text of the status or column under the cursor
func (m Model) targetLabel() string {
	if m.layout() == viewconfig.ScopeList {
		view := m.Board.List()
		c := clampList(m.UiState.List(), view)
		if c.Column < len(view.Columns) {
			return view.Columns[c.Column].Label
		}
		return ""
	}
	view := m.Board.Kanban()
	c := clampKanban(m.UiState.Kanban(), view)
	if c.Column < len(view.Columns) {
		return view.Columns[c.Column].Label
	}
	return ""
}

// entry returns the saved settings of a target, or an empty entry
func (m Model) entry(t customize.Target) viewconfig.Entry {
	cfg := m.Board.Config()
	var e *viewconfig.Entry
	if t.Scope == viewconfig.ScopeList {
		e = cfg.Column(t.Column)
	} else {
		e = cfg.Status(t.Status)
	}
	if e == nil {
		return viewconfig.Entry{}
	}
	return *e
}

// moveCard drops the selected card on the neighbouring status column
func (m *Model) moveCard(dir int) tea.Cmd {
	if m.layout() == viewconfig.ScopeList {
		m.NotificationState.Add(state.LevelInfo, "Switch to Kanban to move cards between statuses")
		return nil
	}
	rec, ok := m.selectedRecord()
	if !ok {
		return nil
	}
	view := m.Board.Kanban()
	c := clampKanban(m.UiState.Kanban(), view)
	to := c.Column + dir
	if to < 0 || to >= len(view.Columns) {
		return nil
	}
	return m.dispatchFollowing(board.MoveRecord{RecordID: rec.ID, To: view.Columns[to].Status}, rec.ID)
}

// selectRecord moves the Kanban cursor onto a card, wherever it is now
func (m *Model) selectRecord(id int64) {
	for ci, col := range m.Board.Kanban().Columns {
		for ri, rec := range col.Cards() {
			if rec.ID == id {
				m.UiState.SetKanban(state.Cursor{Column: ci, Row: ri})
				return
			}
		}
	}
}

// cyclePriority sets the selected record's priority to the next option
func (m *Model) cyclePriority() tea.Cmd {
	rec, ok := m.selectedRecord()
	if !ok {
		return nil
	}
	f, ok := m.Board.Schema().Field(priorityField)
	if !ok {
		m.NotificationState.Add(state.LevelInfo, m.Board.Schema().Label+" have no priority")
		return nil
	}
	options := f.Options
	if lookups := m.Board.Lookups(); lookups != nil && len(lookups.Priorities) > 0 {
		options = lookups.Priorities
	}
	if len(options) == 0 {
		return nil
	}
	next := options[(slices.Index(options, rec.Get(priorityField))+1)%len(options)]
	return m.dispatch(board.EditField{RecordID: rec.ID, Field: priorityField, Value: next, Scope: m.layout()})
}

// cycleSort steps the target's sort through ascending, descending and off
func (m *Model) cycleSort() tea.Cmd {
	t, ok := m.target()
	if !ok {
		return nil
	}
	current := m.entry(t).Sort
	if t.Scope == viewconfig.ScopeList {
		cfg := m.Board.Config()
		current = viewconfig.SortNone
		if cfg.List.SortColumn == t.Column {
			current = cfg.List.SortDir
		}
	}
	next := viewconfig.SortAsc
	switch current {
	case viewconfig.SortAsc:
		next = viewconfig.SortDesc
	case viewconfig.SortDesc:
		next = viewconfig.SortNone
	}
	return m.dispatch(customize.SetSort{Target: t, Dir: next, Field: m.entry(t).SortField})
}

// toggleCollapse collapses the target, or shows every List column again
// when all of them are hidden
func (m *Model) toggleCollapse() tea.Cmd {
	t, ok := m.target()
	if !ok {
		if m.layout() == viewconfig.ScopeList {
			return m.dispatch(customize.SetVisibleColumns{})
		}
		return nil
	}
	return m.dispatch(customize.SetCollapsed{Target: t, On: !m.entry(t).Collapsed})
}

// startEdit opens the prompt on the title of the selected card, or on the
// selected cell of the table
func (m *Model) startEdit() tea.Cmd {
	rec, ok := m.selectedRecord()
	if !ok {
		return nil
	}
	schema := m.Board.Schema()
	fieldKey := schema.TitleField

	if m.layout() == viewconfig.ScopeList {
		view := m.Board.List()
		c := clampList(m.UiState.List(), view)
		col := view.Columns[c.Column]
		if col.Overlay {
			m.NotificationState.Add(state.LevelInfo, col.Label+" is an added column; use clear or fill-down")
			return nil
		}
		fieldKey = col.Key
	}

	f, _ := schema.Field(fieldKey)
	m.InputState.RecordID = rec.ID
	m.InputState.Field = fieldKey
	return m.startInput(state.ActionEdit, fmt.Sprintf("#%d %s:", rec.ID, f.Label), rec.Get(fieldKey))
}

// startInput switches to the prompt line with an initial value
func (m *Model) startInput(action state.InputAction, prompt, value string) tea.Cmd {
	m.InputState.Action = action
	m.InputState.Prompt = prompt
	m.InputState.InitialBuffer = value
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.UiState.SetMode(state.InputMode)
	return m.input.Focus()
}
