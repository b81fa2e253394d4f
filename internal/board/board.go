// Package board ties one board key's record cache, view configuration,
// customization controller and quick-edit synchronizer together behind a
// single command dispatcher. Both layouts project from the same cache.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/ianroy/makerflowPM/internal/cache"
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/events"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

const publishRetries = 3

// Board is one open board: one user's view of one entity kind in one scope
type Board struct {
	key       string
	sessionID string
	kind      models.EntityKind
	schema    models.Schema

	service   recordservice.Service
	publisher events.EventPublisher
	cache     *cache.Cache
	ctrl      *customize.Controller
	editor    *quickedit.Synchronizer

	mu       sync.RWMutex
	lookups  *models.Lookups
	loadErr  error
	onChange func()
}

func newBoard(key string, kind models.EntityKind, scope string, service recordservice.Service, ctrl *customize.Controller, publisher events.EventPublisher) *Board {
	params := recordservice.ListParams{}
	if scope != "all" {
		params.Scope = scope
	}
	b := &Board{
		key:       key,
		sessionID: uuid.NewString(),
		kind:      kind,
		schema:    models.SchemaFor(kind),
		service:   service,
		publisher: publisher,
		cache:     cache.New(key, kind, params, service),
		ctrl:      ctrl,
		lookups:   &models.Lookups{},
	}
	b.editor = quickedit.New(quickedit.Config{
		Kind:    kind,
		Cache:   b.cache,
		Service: service,
		View:    ctrl.Config,
		Lookups: b.Lookups,
		Notify:  b.changed,
	})
	return b
}

// Key returns the board key
func (b *Board) Key() string { return b.key }

// SessionID identifies this open instance of the board in logs
func (b *Board) SessionID() string { return b.sessionID }

// Kind returns the entity kind shown on the board
func (b *Board) Kind() models.EntityKind { return b.kind }

// Schema returns the field layout of the board's kind
func (b *Board) Schema() models.Schema { return b.schema }

// Config returns the live view configuration. Callers must not modify it.
func (b *Board) Config() *viewconfig.ViewConfig { return b.ctrl.Config() }

// Lookups returns the option sets and permissions last fetched
func (b *Board) Lookups() *models.Lookups {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lookups
}

// LoadError returns the *cache.FetchError of the last failed refresh, or nil.
// Layouts show an error placeholder while it is set.
func (b *Board) LoadError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadErr
}

// OnChange registers a hook called whenever cached values change, including
// optimistic patches and rollbacks
func (b *Board) OnChange(fn func()) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

func (b *Board) changed() {
	b.mu.RLock()
	fn := b.onChange
	b.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Record returns a copy of a cached record
func (b *Board) Record(id int64) (*models.Record, bool) {
	return b.cache.Get(id)
}

// Records returns the cached records in load order
func (b *Board) Records() []*models.Record {
	return b.cache.Records()
}

// Pending returns the quick-edits still waiting for the record service
func (b *Board) Pending() []quickedit.PendingEdit {
	return b.editor.Pending()
}

func (b *Board) input() projection.Input {
	return projection.NewInput(b.cache.Records(), b.kind, b.ctrl.Config(), b.Lookups())
}

// Kanban projects the cached records into status columns
func (b *Board) Kanban() projection.KanbanView {
	return projection.Kanban(b.input())
}

// List projects the cached records into a table
func (b *Board) List() projection.ListView {
	return projection.List(b.input())
}

// Chooser lists the List columns a user may show or hide
func (b *Board) Chooser() []projection.ChooserItem {
	return projection.Chooser(b.input())
}

// CardEditable reports whether a field control on a card is enabled
func (b *Board) CardEditable(status, field string) bool {
	return projection.CardEditable(b.input(), status, field)
}

// ColumnEditable reports whether the inline inputs of a List column are enabled
func (b *Board) ColumnEditable(idx int) bool {
	return projection.ColumnEditable(b.input(), idx)
}

// Menu returns the header menu of a layout
func (b *Board) Menu(scope viewconfig.Scope) []customize.MenuItem {
	return customize.Menu(scope)
}

// ToggleMode switches the persisted view mode between Kanban and List
func (b *Board) ToggleMode(ctx context.Context) Result {
	next := viewconfig.ModeList
	if b.Config().Mode == viewconfig.ModeList {
		next = viewconfig.ModeKanban
	}
	return b.Dispatch(ctx, customize.SetViewMode{Mode: next})
}

// refresh reloads lookups and records
func (b *Board) refresh(ctx context.Context) error {
	lookups, err := b.service.Lookups(ctx)
	if err != nil {
		// permissions stay as last fetched; a board never loaded stays read-only
		slog.Warn("failed to load lookups", "board", b.key, "error", err)
	} else {
		b.mu.Lock()
		b.lookups = lookups
		b.mu.Unlock()
	}

	_, err = b.cache.Load(ctx)
	b.mu.Lock()
	b.loadErr = err
	b.mu.Unlock()
	b.changed()
	return err
}

// Dispatch runs one command. Record commands go through the quick-edit
// synchronizer, customization commands through the controller. Every
// change is announced on the event publisher.
func (b *Board) Dispatch(ctx context.Context, cmd Command) Result {
	switch c := cmd.(type) {
	case EditField:
		out := b.editor.Submit(ctx, quickedit.Edit{RecordID: c.RecordID, Field: c.Field, Value: c.Value, Scope: c.Scope})
		b.publishOutcome(ctx, events.EventRecordChanged, c.RecordID, out)
		return Result{Outcome: out, Message: out.Message, Err: out.Err}

	case MoveRecord:
		out := b.editor.Move(ctx, c.RecordID, c.To)
		b.publishOutcome(ctx, events.EventRecordChanged, c.RecordID, out)
		return Result{Outcome: out, Message: out.Message, Err: out.Err}

	case DeleteRecord:
		out := b.editor.Delete(ctx, c.RecordID)
		b.publishOutcome(ctx, events.EventRecordDeleted, c.RecordID, out)
		return Result{Outcome: out, Message: out.Message, Err: out.Err}

	case Refresh:
		if err := b.refresh(ctx); err != nil {
			return Result{Message: quickedit.Message(err), Err: err}
		}
		b.publish(ctx, events.EventBoardLoaded, 0)
		return Result{}

	case customize.Command:
		return b.applyCustomization(ctx, c)
	}
	return Result{Err: fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)}
}

func (b *Board) applyCustomization(ctx context.Context, cmd customize.Command) Result {
	effects, err := b.ctrl.Apply(ctx, cmd, b.cache.Records(), b.Lookups())
	if err != nil {
		return Result{Effects: effects, Message: err.Error(), Err: err}
	}
	b.changed()
	b.publish(ctx, events.EventViewChanged, 0)

	res := Result{Effects: effects}
	for _, e := range effects.Edits {
		out := b.editor.Submit(ctx, e)
		b.publishOutcome(ctx, events.EventRecordChanged, e.RecordID, out)
		res.Outcomes = append(res.Outcomes, out)
		if out.Err != nil && res.Message == "" {
			res.Message = out.Message
		}
	}
	return res
}

func (b *Board) publishOutcome(ctx context.Context, typ events.EventType, id int64, out quickedit.Outcome) {
	if out.State != quickedit.StateApplied {
		return
	}
	b.publish(ctx, typ, id)
}

func (b *Board) publish(ctx context.Context, typ events.EventType, id int64) {
	_ = events.PublishWithRetry(ctx, b.publisher, events.Event{
		Type:     typ,
		BoardKey: b.key,
		RecordID: id,
		Source:   b.sessionID,
	}, publishRetries)
}
