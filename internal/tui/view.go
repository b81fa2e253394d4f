package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/tui/components"
	"github.com/ianroy/makerflowPM/internal/tui/layers"
	"github.com/ianroy/makerflowPM/internal/tui/renderers"
	"github.com/ianroy/makerflowPM/internal/tui/state"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/muesli/reflow/wordwrap"
)

// statusBarHeight is the bottom bar
const statusBarHeight = 1

// View renders the current state of the application.
// This implements the "View" part of the Model-View-Update pattern.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	width, height := m.UiState.Width(), m.UiState.Height()
	footer := m.renderFooter()
	bodyHeight := max(height-statusBarHeight-lipgloss.Height(footer), 3)
	if footer == "" {
		bodyHeight = max(height-statusBarHeight, 3)
	}

	body := m.renderBody(width, bodyHeight)
	parts := []string{lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)}
	if footer != "" {
		parts = append(parts, footer)
	}
	parts = append(parts, m.renderStatusBar(width))
	base := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.UiState.Mode() != state.HelpMode {
		view.Content = base
		return view
	}

	help := renderHelp(m.keys.helpGroups(), m.NotificationState.All(), width)
	view.Content = layers.Overlay(base, width, height, help)
	return view
}

// renderBody draws the current layout, or the load error placeholder
func (m Model) renderBody(width, height int) string {
	if err := m.Board.LoadError(); err != nil {
		text := fmt.Sprintf("%s could not be loaded.\n%s\n\nPress %s to try again.",
			m.Board.Schema().Label, quickedit.Message(err), m.Config.KeyMappings.Refresh)
		return components.ErrorBannerStyle.Render(wordwrap.String(text, max(width-4, 20)))
	}

	pending := m.pendingRecords()
	if m.layout() == viewconfig.ScopeList {
		view := m.Board.List()
		c := clampList(m.UiState.List(), view)
		return renderers.RenderList(view, renderers.Selection{Column: c.Column, Row: c.Row}, width, height, pending)
	}
	view := m.Board.Kanban()
	c := clampKanban(m.UiState.Kanban(), view)
	return renderers.RenderKanban(view, renderers.Selection{Column: c.Column, Row: c.Row}, width, height, pending)
}

// renderFooter draws the prompt line or the delete confirmation
func (m Model) renderFooter() string {
	switch m.UiState.Mode() {
	case state.InputMode:
		return components.PromptBoxStyle.Render(m.InputState.Prompt + "\n" + m.input.View())
	case state.DeleteConfirmMode:
		rec, ok := m.selectedRecord()
		if !ok {
			return ""
		}
		return components.PromptBoxStyle.Render(fmt.Sprintf("Delete #%d %s? (y/n)", rec.ID, rec.Title()))
	}
	return ""
}

func (m Model) renderStatusBar(width int) string {
	layout := "Kanban"
	if m.layout() == viewconfig.ScopeList {
		layout = "List"
	}
	props := components.StatusBarProps{
		Width:   width,
		Board:   m.Board.Schema().Label + " · " + layout,
		Search:  m.Board.Config().Search,
		Pending: len(m.Board.Pending()),
	}
	if n, ok := m.NotificationState.Latest(); ok {
		props.Notice = n.Message
		switch n.Level {
		case state.LevelError:
			props.Level = components.NoticeError
		case state.LevelWarning:
			props.Level = components.NoticeWarning
		default:
			props.Level = components.NoticeInfo
		}
	}
	return components.RenderStatusBar(props)
}

// pendingRecords marks the records with saves in flight
func (m Model) pendingRecords() map[int64]bool {
	edits := m.Board.Pending()
	if len(edits) == 0 {
		return nil
	}
	out := make(map[int64]bool, len(edits))
	for _, p := range edits {
		out[p.RecordID] = true
	}
	return out
}
