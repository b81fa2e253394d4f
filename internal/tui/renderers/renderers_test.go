package renderers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

func record(id int64, title, status, priority string) *models.Record {
	rec := models.NewRecord(id, models.KindTasks)
	rec.Set("title", title)
	rec.Set("status", status)
	rec.Set("priority", priority)
	return rec
}

func listView(rows ...projection.ListRow) projection.ListView {
	count := 0
	for _, r := range rows {
		if !r.Separator {
			count++
		}
	}
	return projection.ListView{
		Columns: []projection.ListColumn{
			{Index: 0, Key: "title", Label: "Title", Type: models.FieldText, Sort: viewconfig.SortAsc},
			{Index: 1, Key: "status", Label: "Status", Type: models.FieldEnum},
			{Index: 2, Key: "priority", Label: "Priority", Type: models.FieldEnum, Required: true},
		},
		Rows:         rows,
		VisibleCount: count,
	}
}

func row(rec *models.Record) projection.ListRow {
	return projection.ListRow{
		Record: rec,
		Cells:  []string{rec.Get("title"), rec.Get("status"), rec.Get("priority")},
	}
}

func TestRenderList_HeaderAndRows(t *testing.T) {
	view := listView(
		row(record(1, "Calibrate laser", "Todo", "High")),
		row(record(2, "Order PLA", "Doing", "Low")),
	)

	output := ansi.Strip(RenderList(view, Selection{Row: 1}, 100, 20, nil))

	for _, want := range []string{"Title ▲", "Status", "Priority*", "#1 Calibrate laser", "#2 Order PLA"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	lines := strings.Split(output, "\n")
	var selected string
	for _, l := range lines {
		if strings.HasPrefix(l, "> ") {
			selected = l
		}
	}
	if !strings.Contains(selected, "Order PLA") {
		t.Errorf("expected the second record to be selected, got %q", selected)
	}
}

func TestRenderList_ValueAliases(t *testing.T) {
	view := listView(row(record(1, "Calibrate laser", "Todo", "High")))
	view.Columns[2].ValueAliases = map[string]string{"High": "Urgent"}

	output := ansi.Strip(RenderList(view, Selection{}, 100, 20, nil))
	if !strings.Contains(output, "Urgent") {
		t.Errorf("expected aliased value in output:\n%s", output)
	}
}

func TestRenderList_Separators(t *testing.T) {
	view := listView(
		projection.ListRow{Separator: true, Group: "High"},
		row(record(1, "Calibrate laser", "Todo", "High")),
		projection.ListRow{Separator: true, Group: ""},
		row(record(2, "Order PLA", "Todo", "")),
	)

	output := ansi.Strip(RenderList(view, Selection{Row: 1}, 100, 20, nil))
	if !strings.Contains(output, "── High") || !strings.Contains(output, "── (none)") {
		t.Errorf("expected group separators in output:\n%s", output)
	}
	for _, l := range strings.Split(output, "\n") {
		if strings.HasPrefix(l, "> ") && !strings.Contains(l, "Order PLA") {
			t.Errorf("selection must skip separators, got %q", l)
		}
	}
}

func TestRenderList_Empty(t *testing.T) {
	output := ansi.Strip(RenderList(listView(), Selection{}, 100, 20, nil))
	if !strings.Contains(output, "No records to display") {
		t.Errorf("expected empty state, got:\n%s", output)
	}
}

func TestRenderList_NoColumns(t *testing.T) {
	output := ansi.Strip(RenderList(projection.ListView{}, Selection{}, 100, 20, nil))
	if !strings.Contains(output, "All columns are hidden") {
		t.Errorf("expected hidden columns hint, got:\n%s", output)
	}
}

func TestRenderList_ScrollsToSelection(t *testing.T) {
	var rows []projection.ListRow
	for i := int64(1); i <= 30; i++ {
		rows = append(rows, row(record(i, fmt.Sprintf("Task %02d", i), "Todo", "Low")))
	}

	output := ansi.Strip(RenderList(listView(rows...), Selection{Row: 25}, 100, 12, nil))
	if !strings.Contains(output, "Task 26") {
		t.Errorf("selected row must be visible:\n%s", output)
	}
	if strings.Contains(output, "Task 01") {
		t.Errorf("first row should be scrolled out:\n%s", output)
	}
	if !strings.Contains(output, "▲ more above") || !strings.Contains(output, "▼ more below") {
		t.Errorf("expected both scroll indicators:\n%s", output)
	}
}

func TestRenderList_PendingMarker(t *testing.T) {
	view := listView(row(record(4, "Order resin", "Todo", "Low")))
	output := ansi.Strip(RenderList(view, Selection{}, 120, 20, map[int64]bool{4: true}))
	if !strings.Contains(output, "saving…") {
		t.Errorf("expected pending marker:\n%s", output)
	}
}

func TestRenderList_TruncatesLongCells(t *testing.T) {
	view := listView(row(record(1, strings.Repeat("long ", 20), "Todo", "Low")))
	output := ansi.Strip(RenderList(view, Selection{}, 200, 20, nil))
	if !strings.Contains(output, "…") {
		t.Errorf("expected truncated title:\n%s", output)
	}
}

func kanbanView() projection.KanbanView {
	todo := projection.KanbanColumn{Status: "Todo", Label: "Todo", Count: 2, Items: []projection.KanbanItem{
		{Record: record(1, "Calibrate laser", "Todo", "High")},
		{Record: record(2, "Order PLA", "Todo", "Low")},
	}}
	doing := projection.KanbanColumn{Status: "Doing", Label: "In progress", Count: 1, Items: []projection.KanbanItem{
		{Record: record(3, "Fix CNC spindle", "Doing", "High")},
	}}
	done := projection.KanbanColumn{Status: "Done", Label: "Done", Collapsed: true}
	return projection.KanbanView{Columns: []projection.KanbanColumn{todo, doing, done}, VisibleCount: 3}
}

func TestRenderKanban(t *testing.T) {
	output := ansi.Strip(RenderKanban(kanbanView(), Selection{Column: 1}, 140, 30, nil))

	for _, want := range []string{"Todo (2)", "In progress (1)", "#1 Calibrate laser", "#3 Fix CNC spindle", "▸"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRenderKanban_NoColumns(t *testing.T) {
	output := ansi.Strip(RenderKanban(projection.KanbanView{}, Selection{}, 100, 30, nil))
	if !strings.Contains(output, "No statuses to show") {
		t.Errorf("expected empty board message, got %q", output)
	}
}

func TestRenderKanban_ScrollsColumns(t *testing.T) {
	view := kanbanView()
	for i := 0; i < 6; i++ {
		view.Columns = append(view.Columns, projection.KanbanColumn{Status: fmt.Sprintf("S%d", i), Label: fmt.Sprintf("Q%d", i)})
	}

	output := ansi.Strip(RenderKanban(view, Selection{Column: len(view.Columns) - 1}, 60, 30, nil))
	if !strings.Contains(output, "Q5") {
		t.Errorf("selected column must be on screen:\n%s", output)
	}
	if strings.Contains(output, "Todo (2)") {
		t.Errorf("first column should be scrolled out:\n%s", output)
	}
	if !strings.Contains(output, "◀") {
		t.Errorf("expected left scroll marker:\n%s", output)
	}
}

func TestKanbanColumnWidth(t *testing.T) {
	view := kanbanView()
	if got := KanbanColumnWidth(view, 0); got != 32 {
		t.Errorf("unknown width: got %d, want 32", got)
	}
	if got := KanbanColumnWidth(view, 40); got != 18 {
		t.Errorf("narrow terminal: got %d, want minimum 18", got)
	}
	if got := KanbanColumnWidth(view, 90); got != 40 {
		t.Errorf("wide terminal: got %d, want 40", got)
	}
}
