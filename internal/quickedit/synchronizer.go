// Package quickedit is the single path both board layouts use to change a
// record: patch the cache optimistically, save through the record service,
// then apply the canonical answer or roll back.
package quickedit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ianroy/makerflowPM/internal/cache"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// State is the lifecycle position of one quick-edit
type State int

const (
	StateIdle State = iota
	StatePending
	StateApplied
	StateRejected
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateApplied:
		return "applied"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// Edit is a requested single-field change from a rendered control
type Edit struct {
	RecordID int64
	Field    string
	Value    string
	Scope    viewconfig.Scope // the layout the control lives in
}

// PendingEdit is an optimistic change waiting for the record service
type PendingEdit struct {
	ID        string
	RecordID  int64
	Field     string
	Previous  string
	Value     string
	Seq       uint64
	StartedAt time.Time
}

// Outcome is the result of one quick-edit
type Outcome struct {
	State     State
	Pending   *PendingEdit
	Canonical map[string]string
	Message   string // user-facing, empty on plain success
	Stale     bool   // a newer edit to the same field superseded this one
	Err       error
}

// Config wires a synchronizer to one board
type Config struct {
	Kind    models.EntityKind
	Cache   *cache.Cache
	Service recordservice.Service
	// View returns the current view configuration of the board
	View func() *viewconfig.ViewConfig
	// Lookups returns the current option sets and permissions
	Lookups func() *models.Lookups
	// Notify is called whenever cached values change so layouts re-project
	Notify func()
}

type fieldKey struct {
	id    int64
	field string
}

// Synchronizer runs the idle → pending → applied|rejected state machine.
// Several edits may be in flight at once; each owns its PendingEdit.
type Synchronizer struct {
	cfg    Config
	schema models.Schema

	mu      sync.Mutex
	seq     map[fieldKey]uint64 // last sequence issued per field
	live    map[fieldKey]uint64 // edit whose value the cache shows
	pending map[string]*PendingEdit
}

// New creates a synchronizer for one board
func New(cfg Config) *Synchronizer {
	if cfg.Notify == nil {
		cfg.Notify = func() {}
	}
	if cfg.Lookups == nil {
		cfg.Lookups = models.DefaultLookups
	}
	if cfg.View == nil {
		cfg.View = func() *viewconfig.ViewConfig { return viewconfig.Default("") }
	}
	return &Synchronizer{
		cfg:     cfg,
		schema:  models.SchemaFor(cfg.Kind),
		seq:     make(map[fieldKey]uint64),
		live:    make(map[fieldKey]uint64),
		pending: make(map[string]*PendingEdit),
	}
}

func (s *Synchronizer) input() projection.Input {
	return projection.NewInput(nil, s.cfg.Kind, s.cfg.View(), s.cfg.Lookups())
}

// columnLabel is the name a user sees for a field in the List layout
func (s *Synchronizer) columnLabel(field models.FieldDef, idx int, view *viewconfig.ViewConfig) string {
	if e := view.Column(idx); e != nil && e.Alias != "" {
		return e.Alias
	}
	return field.Label
}

// validate applies the client-side rules that block an edit entirely
func (s *Synchronizer) validate(e Edit, rec *models.Record) error {
	field, ok := s.schema.Field(e.Field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, e.Field)
	}
	in := s.input()
	view := in.Config
	idx := s.schema.FieldIndex(e.Field)
	label := s.columnLabel(field, idx, view)
	reject := func(format string, args ...any) error {
		return &ValidationError{RecordID: e.RecordID, Field: e.Field, Message: fmt.Sprintf(format, args...)}
	}

	if !in.Permissions.CanEdit {
		return reject("You do not have permission to edit %s.", strings.ToLower(s.schema.Label))
	}
	if field.ReadOnly {
		return reject("%s is calculated and cannot be edited.", label)
	}

	switch e.Scope {
	case viewconfig.ScopeList:
		if !projection.ColumnEditable(in, idx) {
			return reject("%s is locked for editing.", label)
		}
	default:
		if !projection.CardEditable(in, rec.Status(), e.Field) {
			return reject("Cards in %s are locked for editing.", rec.Status())
		}
	}

	if strings.TrimSpace(e.Value) == "" {
		required := field.Required
		if entry := view.Column(idx); entry != nil && entry.Required {
			required = true
		}
		if required {
			return reject("%s is required and cannot be cleared.", label)
		}
	}
	return nil
}

// Begin validates an edit and applies it to the cache optimistically.
// A *ValidationError leaves the state machine idle: nothing is patched.
func (s *Synchronizer) Begin(e Edit) (*PendingEdit, error) {
	rec, ok := s.cfg.Cache.Get(e.RecordID)
	if !ok {
		return nil, fmt.Errorf("record %d: %w", e.RecordID, cache.ErrRecordNotCached)
	}
	if err := s.validate(e, rec); err != nil {
		return nil, err
	}

	s.mu.Lock()
	prev, err := s.cfg.Cache.Patch(e.RecordID, e.Field, e.Value)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	key := fieldKey{e.RecordID, e.Field}
	s.seq[key]++
	s.live[key] = s.seq[key]
	p := &PendingEdit{
		ID:        uuid.NewString(),
		RecordID:  e.RecordID,
		Field:     e.Field,
		Previous:  prev,
		Value:     e.Value,
		Seq:       s.seq[key],
		StartedAt: time.Now(),
	}
	s.pending[p.ID] = p
	s.mu.Unlock()

	slog.Debug("quick-edit pending", "kind", s.cfg.Kind, "record_id", e.RecordID, "field", e.Field, "seq", p.Seq)
	s.cfg.Notify()
	return p, nil
}

// Complete reconciles a pending edit with the record service's answer.
// Only the live edit of a field (the newest one not yet rejected) touches
// the cache. Responses for older edits are stale: they never overwrite the
// newer optimistic value, but they become the rollback baseline of the next
// newer edit. Rejecting the live edit hands the field back to the newest
// older edit still in flight.
func (s *Synchronizer) Complete(p *PendingEdit, res *recordservice.SaveResult, saveErr error) Outcome {
	s.mu.Lock()
	if _, ok := s.pending[p.ID]; !ok {
		s.mu.Unlock()
		return Outcome{State: StateIdle, Pending: p, Err: ErrNotPending}
	}
	delete(s.pending, p.ID)
	key := fieldKey{p.RecordID, p.Field}
	stale := s.live[key] != p.Seq

	if saveErr != nil {
		msg := Message(saveErr)
		if stale {
			if next := s.nextPending(p); next != nil {
				next.Previous = p.Previous
			}
		} else {
			if _, err := s.cfg.Cache.Patch(p.RecordID, p.Field, p.Previous); err != nil {
				slog.Warn("rollback target missing", "record_id", p.RecordID, "error", err)
			}
			s.live[key] = s.latestPending(key)
		}
		s.mu.Unlock()

		s.logRejected(p, saveErr, stale)
		if !stale {
			s.cfg.Notify()
		}
		return Outcome{
			State:   StateRejected,
			Pending: p,
			Message: msg,
			Stale:   stale,
			Err: &MutationRejected{
				RecordID: p.RecordID,
				Field:    p.Field,
				Code:     errorCode(saveErr),
				Message:  msg,
				Err:      saveErr,
			},
		}
	}

	var canonical map[string]string
	if res != nil {
		canonical = res.Canonical
	}
	if stale {
		if next := s.nextPending(p); next != nil {
			next.Previous = p.Value
			if v, ok := canonical[p.Field]; ok {
				next.Previous = v
			}
		}
		s.mu.Unlock()
		slog.Info("stale quick-edit response ignored", "record_id", p.RecordID, "field", p.Field, "seq", p.Seq)
		return Outcome{State: StateApplied, Pending: p, Canonical: canonical, Stale: true}
	}

	// fields with other edits still in flight keep their optimistic values
	apply := make(map[string]string, len(canonical))
	for k, v := range canonical {
		if k != p.Field && s.inFlight(p.RecordID, k) {
			continue
		}
		apply[k] = v
	}
	if err := s.cfg.Cache.Replace(p.RecordID, apply); err != nil {
		slog.Warn("reconcile target missing", "record_id", p.RecordID, "error", err)
	}
	s.mu.Unlock()

	if v, ok := canonical[p.Field]; ok && v != p.Value {
		slog.Info("quick-edit corrected by record service", "record_id", p.RecordID, "field", p.Field, "sent", p.Value, "canonical", v)
	}
	s.cfg.Notify()
	return Outcome{State: StateApplied, Pending: p, Canonical: canonical}
}

// latestPending returns the newest in-flight sequence for a field, or 0.
// Must be called with s.mu held.
func (s *Synchronizer) latestPending(key fieldKey) uint64 {
	var latest uint64
	for _, q := range s.pending {
		if q.RecordID == key.id && q.Field == key.field && q.Seq > latest {
			latest = q.Seq
		}
	}
	return latest
}

// nextPending returns the in-flight edit issued right after p on the same
// field. Must be called with s.mu held.
func (s *Synchronizer) nextPending(p *PendingEdit) *PendingEdit {
	var next *PendingEdit
	for _, q := range s.pending {
		if q.RecordID != p.RecordID || q.Field != p.Field || q.Seq <= p.Seq {
			continue
		}
		if next == nil || q.Seq < next.Seq {
			next = q
		}
	}
	return next
}

// inFlight must be called with s.mu held
func (s *Synchronizer) inFlight(id int64, field string) bool {
	for _, p := range s.pending {
		if p.RecordID == id && p.Field == field {
			return true
		}
	}
	return false
}

func (s *Synchronizer) logRejected(p *PendingEdit, err error, stale bool) {
	if errorCode(err) == codeTransport {
		slog.Error("quick-edit failed", "kind", s.cfg.Kind, "record_id", p.RecordID, "field", p.Field, "stale", stale, "error", err)
		return
	}
	slog.Info("quick-edit rejected", "kind", s.cfg.Kind, "record_id", p.RecordID, "field", p.Field, "stale", stale, "error", err)
}

// Submit runs a whole quick-edit. The remote save is the only blocking step.
func (s *Synchronizer) Submit(ctx context.Context, e Edit) Outcome {
	p, err := s.Begin(e)
	if err != nil {
		return Outcome{State: StateIdle, Message: err.Error(), Err: err}
	}
	res, err := s.cfg.Service.Save(ctx, s.cfg.Kind, p.RecordID, map[string]string{p.Field: p.Value})
	return s.Complete(p, res, err)
}

// Move changes a card's status as a drop onto another Kanban column. Drops
// on hidden, restrict-view or restrict-edit statuses are refused without a
// pending edit or remote call.
func (s *Synchronizer) Move(ctx context.Context, id int64, to string) Outcome {
	rec, ok := s.cfg.Cache.Get(id)
	if !ok {
		err := fmt.Errorf("record %d: %w", id, cache.ErrRecordNotCached)
		return Outcome{State: StateIdle, Message: err.Error(), Err: err}
	}
	if rec.Status() == to {
		return Outcome{State: StateIdle}
	}
	if !projection.DropTarget(s.input(), to) {
		err := &ValidationError{
			RecordID: id,
			Field:    s.schema.StatusField,
			Message:  fmt.Sprintf("Cards cannot be moved to %s.", to),
		}
		slog.Debug("drop refused", "record_id", id, "from", rec.Status(), "to", to)
		return Outcome{State: StateIdle, Message: err.Message, Err: err}
	}
	return s.Submit(ctx, Edit{RecordID: id, Field: s.schema.StatusField, Value: to, Scope: viewconfig.ScopeKanban})
}

// Delete removes a record optimistically and restores it if the record
// service refuses.
func (s *Synchronizer) Delete(ctx context.Context, id int64) Outcome {
	if !s.cfg.Lookups().PermissionsFor(s.cfg.Kind).CanDelete {
		err := &ValidationError{RecordID: id, Message: fmt.Sprintf("You do not have permission to delete %s.", strings.ToLower(s.schema.Label))}
		return Outcome{State: StateIdle, Message: err.Message, Err: err}
	}

	rec, idx, err := s.cfg.Cache.Remove(id)
	if err != nil {
		return Outcome{State: StateIdle, Message: err.Error(), Err: err}
	}
	p := &PendingEdit{ID: uuid.NewString(), RecordID: id, StartedAt: time.Now()}
	s.cfg.Notify()

	if err := s.cfg.Service.Delete(ctx, s.cfg.Kind, id); err != nil {
		s.cfg.Cache.Restore(rec, idx)
		s.cfg.Notify()
		s.logRejected(p, err, false)
		msg := Message(err)
		return Outcome{
			State:   StateRejected,
			Pending: p,
			Message: msg,
			Err:     &MutationRejected{RecordID: id, Code: errorCode(err), Message: msg, Err: err},
		}
	}
	slog.Debug("record deleted", "kind", s.cfg.Kind, "record_id", id)
	return Outcome{State: StateApplied, Pending: p}
}

// Pending returns the edits currently in flight
func (s *Synchronizer) Pending() []PendingEdit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PendingEdit, 0, len(s.pending))
	for _, p := range s.pending {
		out = append(out, *p)
	}
	return out
}
