package tui

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/events"
	"github.com/ianroy/makerflowPM/internal/tui/state"
)

// Update is the main update dispatcher that handles all messages and updates the model.
// This implements the "Update" part of the Model-View-Update pattern.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Check if context is cancelled (graceful shutdown)
	select {
	case <-m.Ctx.Done():
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UiState.SetWidth(msg.Width)
		m.UiState.SetHeight(msg.Height)
		return m, nil

	case boardChangedMsg:
		m.clampCursors()
		return m, m.waitForChange()

	case dispatchResultMsg:
		m.handleResult(msg)
		return m, nil

	case remoteEventMsg:
		return m, tea.Batch(m.handleRemoteEvent(msg.Event), m.listenForEvents())

	case eventsClosedMsg:
		slog.Debug("board event stream closed", "board", m.Board.Key())
		m.eventChan = nil
		return m, nil

	case tea.KeyPressMsg:
		var cmd tea.Cmd
		switch m.UiState.Mode() {
		case state.InputMode:
			cmd = m.handleInputMode(msg)
		case state.DeleteConfirmMode:
			cmd = m.handleDeleteConfirm(msg)
		case state.HelpMode:
			cmd = m.handleHelpMode(msg)
		default:
			cmd = m.handleNormalMode(msg)
		}
		return m, cmd
	}

	// Cursor blink and other input internals
	if m.UiState.Mode() == state.InputMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResult reports what a dispatched command did
func (m *Model) handleResult(msg dispatchResultMsg) {
	res := msg.Result
	if msg.Follow != 0 {
		m.selectRecord(msg.Follow)
	}
	m.clampCursors()

	if !res.OK() {
		slog.Debug("board command failed", "command", msg.Name, "board", m.Board.Key(), "error", res.Err)
		text := res.Message
		if text == "" {
			text = firstFailure(res)
		}
		m.NotificationState.Add(state.LevelError, text)
		return
	}
	if res.Message != "" {
		m.NotificationState.Add(state.LevelWarning, res.Message)
		return
	}
	if msg.Name == (board.Refresh{}).Name() || msg.Name == (board.DeleteRecord{}).Name() {
		m.NotificationState.ClearLevel(state.LevelError)
	}
}

func firstFailure(res board.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	for _, o := range res.Outcomes {
		if o.Err != nil {
			if o.Message != "" {
				return o.Message
			}
			return o.Err.Error()
		}
	}
	return "Something went wrong"
}

// handleRemoteEvent reloads the board when another session changed it.
// Reloads wait while local saves are in flight so optimistic values are
// not replaced by older stored ones.
func (m *Model) handleRemoteEvent(ev events.Event) tea.Cmd {
	if ev.BoardKey != m.Board.Key() || ev.Source == m.Board.SessionID() {
		return nil
	}
	if ev.Type == events.EventBoardLoaded {
		return nil
	}
	if len(m.Board.Pending()) > 0 {
		slog.Debug("skipping reload while saves are pending", "board", m.Board.Key(), "event", ev.Type)
		return nil
	}
	return m.dispatch(board.Refresh{})
}
