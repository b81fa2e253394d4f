package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/ianroy/makerflowPM/internal/projection"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/muesli/reflow/truncate"
)

// ColumnProps controls how a status column is drawn
type ColumnProps struct {
	Width        int
	Height       int // fixed height, 0 for auto
	Selected     bool
	SelectedCard int // index into the column's cards, -1 for none
	ScrollOffset int // index of the first visible item
	Pending      map[int64]bool
}

// RenderColumn renders a complete column with its header and cards
//
// Layout:
//
//	{Label} ({count}) ▲
//	filter: {text}
//	▲ more above
//	── {group} ──
//	{Card 1}
//	{Card 2}
//	▼ more below
//
// Collapsed columns render the header only.
func RenderColumn(col projection.KanbanColumn, props ColumnProps) string {
	style := ColumnStyle
	if props.Selected {
		style = SelectedColumnStyle
	}

	if col.Collapsed {
		header := TitleStyle.Render("▸") + "\n" + SubtleStyle.Render(fmt.Sprintf("%d", col.Count))
		return style.Width(CollapsedColumnWidth).Render(header + "\n" + verticalLabel(col.Label))
	}

	width := max(props.Width, MinColumnWidth)
	inner := width - columnBorderOverhead
	content := renderColumnHeader(col, inner) + "\n"

	if len(col.Items) == 0 {
		content += SubtleStyle.Italic(true).Render("No records")
		return style.Width(width).Render(content)
	}

	maxItems := len(col.Items)
	if props.Height > 0 {
		maxItems = VisibleItems(props.Height)
	}
	start := min(max(props.ScrollOffset, 0), len(col.Items)-1)
	end := min(start+maxItems, len(col.Items))

	if start > 0 {
		content += IndicatorStyle.Render("▲ more above") + "\n"
	}

	cardIdx := 0
	for i, it := range col.Items {
		if it.Separator {
			if i >= start && i < end {
				content += renderSeparator(it.Group, inner) + "\n"
			}
			continue
		}
		if i >= start && i < end {
			content += RenderCard(it.Record, CardProps{
				Width:    inner,
				Selected: props.Selected && cardIdx == props.SelectedCard,
				Pending:  props.Pending[it.Record.ID],
				Locked:   col.RestrictEdit,
				Muted:    col.MuteAssign,
			}) + "\n"
		}
		cardIdx++
	}

	if end < len(col.Items) {
		content += IndicatorStyle.Render("▼ more below")
	}
	return style.Width(width).Render(strings.TrimSuffix(content, "\n"))
}

// VisibleItems returns how many cards fit in a column of the given height
func VisibleItems(height int) int {
	available := height - columnBorderOverhead/2 - headerLines - indicatorLines
	return max(available/cardHeight, 1)
}

func renderColumnHeader(col projection.KanbanColumn, width int) string {
	title := TitleStyle
	if col.Color != "" {
		title = title.Foreground(lipgloss.Color(col.Color))
	}
	label := truncate.StringWithTail(col.Label, uint(max(width-8, 4)), "…")
	header := title.Render(label) + SubtleStyle.Render(fmt.Sprintf(" (%d)", col.Count)) + SortIndicator(col.Sort)
	if col.RestrictEdit {
		header += LockedStyle.Render(" ⊘")
	}
	if col.MuteAssign {
		header += SubtleStyle.Render(" ∅")
	}

	var second string
	switch {
	case col.Filter != "":
		second = SubtleStyle.Render(truncate.StringWithTail("filter: "+col.Filter, uint(width), "…"))
	case col.Description != "":
		second = SubtleStyle.Italic(true).Render(truncate.StringWithTail(col.Description, uint(width), "…"))
	}
	return header + "\n" + second
}

func renderSeparator(group string, width int) string {
	if group == "" {
		group = "(none)"
	}
	text := "── " + group + " "
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat("─", pad)
	}
	return SeparatorStyle.Render(truncate.String(text, uint(width)))
}

func verticalLabel(label string) string {
	var b strings.Builder
	for i, r := range []rune(label) {
		if i >= 12 {
			b.WriteString("…")
			break
		}
		b.WriteRune(r)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// SortIndicator returns the arrow shown next to a sorted header
func SortIndicator(dir viewconfig.SortDir) string {
	switch dir {
	case viewconfig.SortAsc:
		return " ▲"
	case viewconfig.SortDesc:
		return " ▼"
	}
	return ""
}
