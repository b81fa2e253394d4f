// Package tui is the interactive board: the Kanban and List layouts of one
// board with inline quick-edits and header customizations.
package tui

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/config"
	"github.com/ianroy/makerflowPM/internal/events"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/tui/components"
	"github.com/ianroy/makerflowPM/internal/tui/state"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// Model represents the application state for the TUI
type Model struct {
	Ctx    context.Context
	Board  *board.Board
	Config *config.Config

	UiState           *state.UIState
	InputState        *state.InputState
	NotificationState *state.NotificationState

	keys  keyMap
	input textinput.Model

	// changes is signalled by the board whenever cached values or the view
	// configuration change, including from dispatches still in flight
	changes chan struct{}
	// eventChan carries changes made by other sessions; nil when not listening
	eventChan <-chan events.Event
}

// New creates the model for an open board. The publisher, when not nil,
// is listened on for changes other sessions make to the same board.
func New(ctx context.Context, b *board.Board, cfg *config.Config, publisher events.EventPublisher) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	components.InitStyles(cfg.ColorScheme)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		Ctx:               ctx,
		Board:             b,
		Config:            cfg,
		UiState:           state.NewUIState(),
		InputState:        state.NewInputState(),
		NotificationState: state.NewNotificationState(),
		keys:              newKeyMap(cfg.KeyMappings),
		input:             ti,
		changes:           make(chan struct{}, 1),
	}

	b.OnChange(func() {
		select {
		case m.changes <- struct{}{}:
		default:
			// a signal is already queued and the next render sees this change too
		}
	})

	if publisher != nil {
		ch, err := publisher.Listen(ctx)
		if err != nil {
			slog.Warn("failed to listen for board events", "board", b.Key(), "error", err)
		} else {
			m.eventChan = ch
		}
	}

	if err := b.LoadError(); err != nil {
		m.NotificationState.Add(state.LevelError, quickedit.Message(err))
	}
	return m
}

// Init starts listening for board changes
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.listenForEvents())
}

// layout returns the scope of the layout currently shown
func (m Model) layout() viewconfig.Scope {
	if m.Board.Config().Mode == viewconfig.ModeList {
		return viewconfig.ScopeList
	}
	return viewconfig.ScopeKanban
}

// waitForChange blocks until the board signals a change
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return boardChangedMsg{}
		case <-m.Ctx.Done():
			return nil
		}
	}
}

// listenForEvents waits for the next event from another session
func (m Model) listenForEvents() tea.Cmd {
	if m.eventChan == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-m.eventChan
		if !ok {
			return eventsClosedMsg{}
		}
		return remoteEventMsg{Event: ev}
	}
}

// dispatch runs a board command off the update loop and reports its result
func (m Model) dispatch(cmd board.Command) tea.Cmd {
	return m.dispatchFollowing(cmd, 0)
}

// dispatchFollowing is dispatch that selects record id afterwards
func (m Model) dispatchFollowing(cmd board.Command, id int64) tea.Cmd {
	b, ctx := m.Board, m.Ctx
	return func() tea.Msg {
		return dispatchResultMsg{Name: cmd.Name(), Result: b.Dispatch(ctx, cmd), Follow: id}
	}
}
