package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

func task(id int64, title, priority string) *models.Record {
	rec := models.NewRecord(id, models.KindTasks)
	rec.Set("title", title)
	rec.Set("status", "Todo")
	rec.Set("priority", priority)
	return rec
}

func column(items ...projection.KanbanItem) projection.KanbanColumn {
	count := 0
	for _, it := range items {
		if !it.Separator {
			count++
		}
	}
	return projection.KanbanColumn{Status: "Todo", Label: "Todo", Count: count, Items: items}
}

func TestRenderColumnHeader(t *testing.T) {
	tests := []struct {
		name     string
		column   projection.KanbanColumn
		wantText []string
	}{
		{
			name:     "empty column",
			column:   projection.KanbanColumn{Label: "Backlog"},
			wantText: []string{"Backlog", "(0)"},
		},
		{
			name:     "sorted and locked",
			column:   projection.KanbanColumn{Label: "Doing", Count: 3, Sort: viewconfig.SortDesc, RestrictEdit: true},
			wantText: []string{"Doing", "(3)", "▼", "⊘"},
		},
		{
			name:     "muted assignment",
			column:   projection.KanbanColumn{Label: "Review", Count: 2, MuteAssign: true},
			wantText: []string{"Review", "(2)", "∅"},
		},
		{
			name:     "filter shown under the header",
			column:   projection.KanbanColumn{Label: "Done", Count: 1, Filter: "lab"},
			wantText: []string{"filter: lab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ansi.Strip(renderColumnHeader(tt.column, 30))
			for _, want := range tt.wantText {
				if !strings.Contains(result, want) {
					t.Errorf("renderColumnHeader() = %q, want to contain %q", result, want)
				}
			}
		})
	}
}

func TestRenderColumn_EmptyState(t *testing.T) {
	result := ansi.Strip(RenderColumn(column(), ColumnProps{Width: 30, SelectedCard: -1}))
	if !strings.Contains(result, "No records") {
		t.Errorf("expected empty state, got %q", result)
	}
}

func TestRenderColumn_CardsAndSeparators(t *testing.T) {
	col := column(
		projection.KanbanItem{Separator: true, Group: "High"},
		projection.KanbanItem{Record: task(1, "Calibrate laser", "High")},
		projection.KanbanItem{Separator: true, Group: ""},
		projection.KanbanItem{Record: task(2, "Order PLA", "")},
	)
	result := ansi.Strip(RenderColumn(col, ColumnProps{Width: 36, SelectedCard: -1}))

	for _, want := range []string{"── High", "── (none)", "#1 Calibrate laser", "#2 Order PLA"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected %q in %q", want, result)
		}
	}
	if strings.Index(result, "High") > strings.Index(result, "Order PLA") {
		t.Error("separators must keep their position")
	}
}

func TestRenderColumn_Collapsed(t *testing.T) {
	col := column(projection.KanbanItem{Record: task(1, "Hidden title", "Low")})
	col.Collapsed = true
	result := ansi.Strip(RenderColumn(col, ColumnProps{Width: 30}))
	if strings.Contains(result, "Hidden title") {
		t.Errorf("collapsed column must not render cards: %q", result)
	}
	if !strings.Contains(result, "▸") {
		t.Errorf("collapsed marker missing: %q", result)
	}
}

func TestRenderColumn_ScrollIndicators(t *testing.T) {
	var items []projection.KanbanItem
	for i := int64(1); i <= 6; i++ {
		items = append(items, projection.KanbanItem{Record: task(i, "Card", "Low")})
	}
	result := ansi.Strip(RenderColumn(column(items...), ColumnProps{Width: 30, Height: 20, ScrollOffset: 2, SelectedCard: -1}))
	if !strings.Contains(result, "▲ more above") {
		t.Errorf("expected up indicator in %q", result)
	}
	if !strings.Contains(result, "▼ more below") {
		t.Errorf("expected down indicator in %q", result)
	}
	if strings.Contains(result, "#1 ") {
		t.Errorf("scrolled out card rendered: %q", result)
	}
}

func TestRenderCard_WrapsLongTitles(t *testing.T) {
	rec := task(7, "Prepare the onboarding workshop for new faculty members in the automation lab", "High")
	result := ansi.Strip(RenderCard(rec, CardProps{Width: 24}))
	lines := strings.Split(result, "\n")
	// border, two title lines, meta line, border
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), result)
	}
	if !strings.Contains(result, "…") {
		t.Errorf("expected truncated title in %q", result)
	}
	if !strings.Contains(result, "High") {
		t.Errorf("expected priority in meta line: %q", result)
	}
}

func TestRenderCard_Pending(t *testing.T) {
	result := ansi.Strip(RenderCard(task(1, "Order resin", "Low"), CardProps{Width: 30, Pending: true}))
	if !strings.Contains(result, "saving…") {
		t.Errorf("expected pending marker in %q", result)
	}
}

func TestRenderCard_MutedHidesAssignee(t *testing.T) {
	rec := task(3, "Mill fixture", "High")
	rec.Set("assignee", "Priya Shah")

	if result := ansi.Strip(RenderCard(rec, CardProps{Width: 40})); !strings.Contains(result, "Priya Shah") {
		t.Fatalf("expected assignee in %q", result)
	}
	result := ansi.Strip(RenderCard(rec, CardProps{Width: 40, Muted: true}))
	if strings.Contains(result, "Priya Shah") {
		t.Errorf("muted card shows assignee: %q", result)
	}
	if !strings.Contains(result, "High") {
		t.Errorf("muted card lost its priority: %q", result)
	}
}

func TestRenderStatusBar(t *testing.T) {
	result := ansi.Strip(RenderStatusBar(StatusBarProps{
		Width:   80,
		Board:   "Tasks · Kanban",
		Search:  "laser",
		Pending: 2,
		Notice:  "Project is required.",
		Level:   NoticeError,
	}))
	for _, want := range []string{"Tasks · Kanban", "/laser", "Project is required.", "2 saves pending", "press ? for help"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected %q in %q", want, result)
		}
	}
}
