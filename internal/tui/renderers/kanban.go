package renderers

import (
	"charm.land/lipgloss/v2"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/tui/components"
)

// RenderKanban lays the status columns out side by side.
// Columns that do not fit are scrolled so the selected column stays visible.
func RenderKanban(view projection.KanbanView, sel Selection, width, height int, pending map[int64]bool) string {
	if len(view.Columns) == 0 {
		return components.SubtleStyle.Italic(true).Render("No statuses to show")
	}

	colWidth := KanbanColumnWidth(view, width)
	first, last := columnWindow(view, sel.Column, colWidth, width)

	rendered := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		col := view.Columns[i]
		selected := i == sel.Column
		selectedCard := -1
		if selected {
			selectedCard = sel.Row
		}
		rendered = append(rendered, components.RenderColumn(col, components.ColumnProps{
			Width:        colWidth,
			Height:       height,
			Selected:     selected,
			SelectedCard: selectedCard,
			ScrollOffset: cardScroll(col, selectedCard, height),
			Pending:      pending,
		}))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if first == 0 && last == len(view.Columns) {
		return board
	}
	left, right := " ", " "
	if first > 0 {
		left = "◀"
	}
	if last < len(view.Columns) {
		right = "▶"
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		components.IndicatorStyle.Render(left), board, components.IndicatorStyle.Render(right))
}

// KanbanColumnWidth shares the terminal width between the expanded columns
func KanbanColumnWidth(view projection.KanbanView, width int) int {
	if width <= 0 {
		return components.DefaultColumnWidth
	}
	expanded, collapsed := 0, 0
	for _, col := range view.Columns {
		if col.Collapsed {
			collapsed++
		} else {
			expanded++
		}
	}
	if expanded == 0 {
		return components.DefaultColumnWidth
	}
	available := width - 2 - collapsed*(components.CollapsedColumnWidth+2)
	return min(max(available/expanded, components.MinColumnWidth), components.DefaultColumnWidth+8)
}

// columnWindow returns the half-open range of columns drawn on screen
func columnWindow(view projection.KanbanView, selected, colWidth, width int) (int, int) {
	if width <= 0 {
		return 0, len(view.Columns)
	}
	size := func(i int) int {
		if view.Columns[i].Collapsed {
			return components.CollapsedColumnWidth + 2
		}
		return colWidth
	}
	selected = min(max(selected, 0), len(view.Columns)-1)

	first := 0
	for {
		used, last := 0, first
		for last < len(view.Columns) && used+size(last) <= width-2 {
			used += size(last)
			last++
		}
		if last == first {
			last = first + 1
		}
		if selected < last || first >= selected {
			return first, last
		}
		first++
	}
}

// cardScroll returns the item offset that keeps the selected card on screen
func cardScroll(col projection.KanbanColumn, selectedCard, height int) int {
	if selectedCard < 0 || height <= 0 {
		return 0
	}
	pos, n := 0, 0
	for i, it := range col.Items {
		if it.Separator {
			continue
		}
		if n == selectedCard {
			pos = i
			break
		}
		n++
	}
	visible := components.VisibleItems(height)
	if pos < visible {
		return 0
	}
	return pos - visible + 1
}
