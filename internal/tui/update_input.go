package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/tui/state"
)

// handleInputMode handles keyboard input while the prompt line is open
func (m *Model) handleInputMode(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return nil
	case "enter":
		cmd := m.submitInput(m.input.Value())
		m.closeInput()
		return cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submitInput turns the prompt text into a board command
func (m *Model) submitInput(value string) tea.Cmd {
	in := m.InputState
	if !in.HasChanges(value) {
		return nil
	}
	value = strings.TrimSpace(value)

	switch in.Action {
	case state.ActionSearch:
		return m.dispatch(customize.SetSearch{Text: value})
	case state.ActionFilter:
		if t, ok := m.target(); ok {
			return m.dispatch(customize.SetFilter{Target: t, Text: value})
		}
	case state.ActionRename:
		if t, ok := m.target(); ok {
			return m.dispatch(customize.Rename{Target: t, Alias: value})
		}
	case state.ActionEdit:
		return m.dispatch(board.EditField{
			RecordID: in.RecordID,
			Field:    in.Field,
			Value:    value,
			Scope:    m.layout(),
		})
	}
	return nil
}

func (m *Model) closeInput() {
	m.input.Blur()
	m.input.Reset()
	m.InputState.Clear()
	m.UiState.SetMode(state.NormalMode)
}

// handleDeleteConfirm asks before deleting the selected record
func (m *Model) handleDeleteConfirm(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.UiState.SetMode(state.NormalMode)
		rec, ok := m.selectedRecord()
		if !ok {
			return nil
		}
		return m.dispatch(board.DeleteRecord{RecordID: rec.ID})
	case "n", "N", "esc":
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}

// handleHelpMode closes the help screen on any of its keys
func (m *Model) handleHelpMode(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "q", m.Config.KeyMappings.ShowHelp:
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}
