package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ianroy/makerflowPM/internal/cache"
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/events"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/testutil"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tasksKey = viewconfig.BoardKey("u1", models.KindTasks, "")

type fixture struct {
	svc     *testutil.FakeService
	store   *viewconfig.MemoryStore
	bus     *events.Bus
	manager *Manager
	events  <-chan events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		svc:   testutil.NewFakeService(),
		store: viewconfig.NewMemoryStore(),
		bus:   events.NewBus(),
	}
	t.Cleanup(func() { _ = f.bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := f.bus.Listen(ctx)
	require.NoError(t, err)
	f.events = ch

	f.manager = NewManager(f.svc, f.store, f.bus)
	return f
}

func (f *fixture) open(t *testing.T) *Board {
	t.Helper()
	b, err := f.manager.Open(context.Background(), tasksKey, models.KindTasks)
	require.NoError(t, err)
	return b
}

func nextEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for board event")
	}
	return events.Event{}
}

func noEvent(t *testing.T, ch <-chan events.Event) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOpenSharesBoards(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTasks("Todo", "Done")

	b := f.open(t)
	assert.Len(t, b.Records(), 2)
	assert.NoError(t, b.LoadError())
	assert.NotEmpty(t, b.SessionID())
	assert.True(t, b.Lookups().PermissionsFor(models.KindTasks).CanEdit)

	again := f.open(t)
	assert.Same(t, b, again)
	assert.Equal(t, []string{tasksKey}, f.manager.Keys())

	got, err := f.manager.Get(tasksKey)
	require.NoError(t, err)
	assert.Same(t, b, got)

	f.manager.Close(tasksKey)
	_, err = f.manager.Get(tasksKey)
	assert.ErrorIs(t, err, ErrBoardNotOpen)
}

func TestOpenRejectsBadKeys(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager.Open(context.Background(), "garbage", models.KindTasks)
	assert.ErrorIs(t, err, viewconfig.ErrInvalidBoardKey)

	_, err = f.manager.Open(context.Background(), tasksKey, models.KindAssets)
	assert.ErrorIs(t, err, viewconfig.ErrInvalidBoardKey)
}

func TestOpenWithFailedLoad(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTasks("Todo")
	f.svc.ListErr = recordservice.ErrTransport

	b := f.open(t)
	var fe *cache.FetchError
	require.True(t, errors.As(b.LoadError(), &fe))
	assert.Empty(t, b.Kanban().VisibleIDs())

	f.svc.ListErr = nil
	res := b.Dispatch(context.Background(), Refresh{})
	require.NoError(t, res.Err)
	assert.NoError(t, b.LoadError())
	assert.Len(t, b.Kanban().VisibleIDs(), 1)
	assert.Equal(t, events.EventBoardLoaded, nextEvent(t, f.events).Type)
}

func TestEditReachesBothLayouts(t *testing.T) {
	f := newFixture(t)
	ids := f.svc.AddTasks("Todo", "In Progress")
	f.svc.Canonical = map[string]string{"priority": "High"}
	b := f.open(t)

	changes := 0
	b.OnChange(func() { changes++ })

	res := b.Dispatch(context.Background(), EditField{RecordID: ids[1], Field: "priority", Value: "Critical"})
	require.True(t, res.OK())
	assert.Equal(t, quickedit.StateApplied, res.Outcome.State)
	assert.GreaterOrEqual(t, changes, 2)

	col, ok := b.Kanban().Column("In Progress")
	require.True(t, ok)
	assert.Equal(t, "High", col.Cards()[0].Get("priority"))

	list := b.List()
	idx := -1
	for i, c := range list.Columns {
		if c.Key == "priority" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "High", list.Rows[1].Cells[idx])
	assert.ElementsMatch(t, b.Kanban().VisibleIDs(), list.VisibleIDs())

	ev := nextEvent(t, f.events)
	assert.Equal(t, events.EventRecordChanged, ev.Type)
	assert.Equal(t, tasksKey, ev.BoardKey)
	assert.Equal(t, ids[1], ev.RecordID)
}

func TestRefusedMoveIsQuiet(t *testing.T) {
	f := newFixture(t)
	ids := f.svc.AddTasks("Todo")
	b := f.open(t)

	res := b.Dispatch(context.Background(), customize.SetRestrictEdit{Target: customize.KanbanStatus("Done"), On: true})
	require.NoError(t, res.Err)
	assert.Equal(t, events.EventViewChanged, nextEvent(t, f.events).Type)

	res = b.Dispatch(context.Background(), MoveRecord{RecordID: ids[0], To: "Done"})
	assert.Error(t, res.Err)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, quickedit.StateIdle, res.Outcome.State)
	assert.Equal(t, 0, f.svc.SaveCount())
	assert.Empty(t, b.Pending())
	noEvent(t, f.events)

	rec, _ := b.Record(ids[0])
	assert.Equal(t, "Todo", rec.Status())
}

func TestMoveAndDelete(t *testing.T) {
	f := newFixture(t)
	ids := f.svc.AddTasks("Todo", "Todo")
	b := f.open(t)

	res := b.Dispatch(context.Background(), MoveRecord{RecordID: ids[0], To: "Done"})
	require.NoError(t, res.Err)
	assert.Equal(t, "Done", f.svc.Stored(models.KindTasks, ids[0]).Status())
	nextEvent(t, f.events)

	res = b.Dispatch(context.Background(), DeleteRecord{RecordID: ids[1]})
	require.NoError(t, res.Err)
	assert.Len(t, b.Records(), 1)
	assert.Equal(t, events.EventRecordDeleted, nextEvent(t, f.events).Type)
}

func TestCustomizationIsPersistedPerNamespace(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTasks("Todo", "Done", "Done")
	b := f.open(t)

	res := b.Dispatch(context.Background(), customize.SetHidden{Target: customize.KanbanStatus("Done"), On: true})
	require.NoError(t, res.Err)

	_, ok := b.Kanban().Column("Done")
	assert.False(t, ok)
	assert.Len(t, b.List().VisibleIDs(), 3, "hiding a Kanban status does not touch List")

	stored, err := f.store.Load(context.Background(), tasksKey)
	require.NoError(t, err)
	assert.True(t, stored.Status("Done").Hidden)
}

func TestFillDownGoesThroughSynchronizer(t *testing.T) {
	f := newFixture(t)
	ids := f.svc.AddTasks("Todo", "Todo", "Todo")
	f.svc.Add(models.KindTasks, map[string]string{"title": "x", "status": "Todo", "project": "MakerLab Launch"})
	b := f.open(t)

	require.NoError(t, b.Dispatch(context.Background(), EditField{RecordID: ids[0], Field: "priority", Value: "Low", Scope: viewconfig.ScopeList}).Err)
	saves := f.svc.SaveCount()

	priority := models.SchemaFor(models.KindTasks).FieldIndex("priority")
	res := b.Dispatch(context.Background(), customize.FillDown{Target: customize.ListColumn(priority)})
	require.True(t, res.OK())
	assert.Len(t, res.Outcomes, 3)
	assert.Equal(t, saves+3, f.svc.SaveCount())
	for _, rec := range b.Records() {
		assert.Equal(t, "Low", rec.Get("priority"))
	}
}

func TestClearRequiredColumnReportsRejections(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTasks("Todo", "Todo")
	b := f.open(t)

	title := models.SchemaFor(models.KindTasks).FieldIndex("title")
	res := b.Dispatch(context.Background(), customize.ClearColumn{Target: customize.ListColumn(title)})
	assert.NoError(t, res.Err)
	assert.False(t, res.OK())
	assert.Contains(t, res.Message, "Title")
	assert.Equal(t, 0, f.svc.SaveCount())
}

func TestToggleMode(t *testing.T) {
	f := newFixture(t)
	b := f.open(t)

	assert.Equal(t, viewconfig.ModeKanban, b.Config().Mode)
	require.NoError(t, b.ToggleMode(context.Background()).Err)
	assert.Equal(t, viewconfig.ModeList, b.Config().Mode)

	stored, _ := f.store.Load(context.Background(), tasksKey)
	assert.Equal(t, viewconfig.ModeList, stored.Mode)

	require.NoError(t, b.ToggleMode(context.Background()).Err)
	assert.Equal(t, viewconfig.ModeKanban, b.Config().Mode)
}

type bogus struct{}

func (bogus) Name() string { return "bogus" }

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)
	b := f.open(t)
	res := b.Dispatch(context.Background(), bogus{})
	assert.ErrorIs(t, res.Err, ErrUnknownCommand)
}

func TestMenuAndChooser(t *testing.T) {
	f := newFixture(t)
	b := f.open(t)
	assert.NotEmpty(t, b.Menu(viewconfig.ScopeList))
	assert.Len(t, b.Chooser(), len(b.Schema().Fields))
	assert.True(t, b.CardEditable("Todo", "priority"))
	assert.False(t, b.ColumnEditable(999))
}
