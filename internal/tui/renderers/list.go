package renderers

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/tui/components"
	"github.com/ianroy/makerflowPM/internal/tui/theme"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

// Selection points at a record on a board.
// For Kanban, Column indexes KanbanView.Columns and Row indexes the column's cards.
// For List, Column indexes ListView.Columns and Row indexes the record rows,
// separators excluded.
type Selection struct {
	Column int
	Row    int
}

const (
	cellGap        = 2
	rowPrefixWidth = 2 // "> " or "  "
	listChrome     = 4 // header, rule, filter line, scroll indicator
)

// RenderList renders the list projection as a table
//
//	  Title ▲      Status    Priority*
//	  ──────────────────────────────────
//	  ── High ───────────────────────────
//	> #12 Laser…   Doing     High
//	  ▼ more below
func RenderList(view projection.ListView, sel Selection, width, height int, pending map[int64]bool) string {
	if len(view.Columns) == 0 {
		return components.SubtleStyle.Italic(true).Render("  All columns are hidden. Press c to choose columns.")
	}

	widths := cellWidths(view)
	lineWidth := tableWidth(widths)
	if width > 0 {
		lineWidth = min(lineWidth, width)
	}
	var out strings.Builder

	out.WriteString(clip(renderListHeader(view.Columns, widths, sel.Column), width))
	out.WriteString("\n")
	out.WriteString("  ")
	out.WriteString(components.SeparatorStyle.Render(strings.Repeat("─", max(lineWidth-rowPrefixWidth, 1))))
	out.WriteString("\n")
	if f := filterSummary(view.Columns); f != "" {
		out.WriteString(clip(components.SubtleStyle.Render("  "+f), width))
		out.WriteString("\n")
	}

	if len(view.Rows) == 0 {
		out.WriteString(components.SubtleStyle.Italic(true).Render("  No records to display"))
		return out.String()
	}

	selectedPos := rowPosition(view.Rows, sel.Row)
	visible := len(view.Rows)
	if height > 0 {
		visible = max(height-listChrome, 1)
	}
	start := scrollStart(selectedPos, visible, len(view.Rows))
	end := min(start+visible, len(view.Rows))

	if start > 0 {
		out.WriteString(components.IndicatorStyle.Render("  ▲ more above"))
		out.WriteString("\n")
	}

	for i := start; i < end; i++ {
		row := view.Rows[i]
		if row.Separator {
			out.WriteString(renderListSeparator(row.Group, lineWidth))
		} else {
			out.WriteString(clip(renderListRow(view.Columns, row, widths, i == selectedPos, pending[row.Record.ID]), width))
		}
		if i < end-1 {
			out.WriteString("\n")
		}
	}

	if end < len(view.Rows) {
		out.WriteString("\n")
		out.WriteString(components.IndicatorStyle.Render("  ▼ more below"))
	}
	return out.String()
}

// cellWidths sizes every column to its widest header or value
func cellWidths(view projection.ListView) []int {
	widths := make([]int, len(view.Columns))
	for i, col := range view.Columns {
		widths[i] = lipgloss.Width(headerText(col))
	}
	for _, row := range view.Rows {
		if row.Separator {
			continue
		}
		for i, col := range view.Columns {
			if i < len(row.Cells) {
				widths[i] = max(widths[i], lipgloss.Width(col.Display(row.Cells[i])))
			}
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], 4), components.ListCellMaxWidth)
	}
	// the record id is prepended to the first column
	widths[0] = min(widths[0]+6, components.ListCellMaxWidth+6)
	return widths
}

func tableWidth(widths []int) int {
	total := rowPrefixWidth
	for _, w := range widths {
		total += w + cellGap
	}
	return total
}

func headerText(col projection.ListColumn) string {
	text := col.Label
	if col.Required {
		text += "*"
	}
	text += components.SortIndicator(col.Sort)
	if col.RestrictEdit || col.ReadOnly {
		text += " ⊘"
	}
	if col.MuteAssign {
		text += " ∅"
	}
	return text
}

func renderListHeader(cols []projection.ListColumn, widths []int, selected int) string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight))
		switch {
		case col.RestrictEdit || col.ReadOnly:
			style = style.Foreground(lipgloss.Color(theme.Locked))
		case col.Color != "":
			style = style.Foreground(lipgloss.Color(col.Color))
		}
		if i == selected {
			style = style.Underline(true)
		}
		cells[i] = style.Render(fit(headerText(col), widths[i]))
	}
	return "  " + strings.Join(cells, strings.Repeat(" ", cellGap))
}

func renderListRow(cols []projection.ListColumn, row projection.ListRow, widths []int, selected, pending bool) string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		var raw string
		if i < len(row.Cells) {
			raw = row.Cells[i]
		}
		text := col.Display(raw)
		if i == 0 {
			text = fmt.Sprintf("#%d %s", row.Record.ID, text)
		}
		cell := fit(text, widths[i])
		if !selected {
			if c := col.ValueColors[raw]; c != "" {
				cell = components.Colored(cell, c)
			} else if col.ReadOnly {
				cell = components.SubtleStyle.Render(cell)
			}
		}
		cells[i] = cell
	}

	line := strings.Join(cells, strings.Repeat(" ", cellGap))
	if pending {
		line += components.PendingStyle.Render(" saving…")
	}
	if selected {
		return components.SelectedRowStyle.Render("> " + line)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal)).Render("  " + line)
}

func renderListSeparator(group string, width int) string {
	if group == "" {
		group = "(none)"
	}
	text := "  ── " + group + " "
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat("─", pad)
	}
	return components.SeparatorStyle.Render(text)
}

func filterSummary(cols []projection.ListColumn) string {
	var parts []string
	for _, col := range cols {
		if col.Filter != "" {
			parts = append(parts, col.Label+"~"+col.Filter)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "filter: " + strings.Join(parts, ", ")
}

// rowPosition maps a record index to its position in rows, separators included
func rowPosition(rows []projection.ListRow, recordIdx int) int {
	n := 0
	for i, row := range rows {
		if row.Separator {
			continue
		}
		if n == recordIdx {
			return i
		}
		n++
	}
	return -1
}

// scrollStart returns the first row to draw so the selected row stays visible
func scrollStart(selected, visible, total int) int {
	if selected < visible || total <= visible {
		return 0
	}
	return min(selected-visible+1, total-visible)
}

// fit truncates and pads text to exactly width cells
func fit(text string, width int) string {
	return padding.String(truncate.StringWithTail(text, uint(width), "…"), uint(width))
}

func clip(line string, width int) string {
	if width <= 0 {
		return line
	}
	return truncate.String(line, uint(width))
}
