package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/tui/theme"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// CardProps controls how a single card is drawn
type CardProps struct {
	Width    int
	Selected bool
	Pending  bool // a quick-edit on the record is in flight
	Locked   bool // the card's status is restrict-edit
	Muted    bool // assignment muted: person values are left out
}

// RenderCard renders a single record as a card
//
//	┌─────────────────────┐
//	│ #12 {Title wrapped  │
//	│ to two lines}       │
//	│ High · Priya Shah   │
//	└─────────────────────┘
func RenderCard(rec *models.Record, props CardProps) string {
	inner := max(props.Width-cardBorderOverhead, 8)

	title := wrapTitle(fmt.Sprintf("#%d %s", rec.ID, rec.Title()), inner)
	meta := truncate.StringWithTail(strings.Join(cardMeta(rec, props.Muted), " · "), uint(inner), "…")

	var metaLine string
	switch {
	case props.Pending:
		metaLine = PendingStyle.Render("saving…")
	case meta == "":
		metaLine = SubtleStyle.Italic(true).Render("no details")
	default:
		metaLine = SubtleStyle.Render(meta)
	}
	if props.Locked {
		metaLine = LockedStyle.Render("locked ") + metaLine
	}

	style := CardStyle.Width(props.Width)
	titleStyle := lipgloss.NewStyle().Bold(true)
	if props.Selected {
		style = style.
			BorderForeground(lipgloss.Color(theme.SelectedBorder)).
			Background(lipgloss.Color(theme.SelectedBg))
		titleStyle = titleStyle.Foreground(lipgloss.Color(theme.Highlight))
	}
	return style.Render(titleStyle.Render(title) + "\n" + metaLine)
}

// wrapTitle wraps a card title to width and keeps at most two lines
func wrapTitle(title string, width int) string {
	lines := strings.Split(wordwrap.String(title, width), "\n")
	if len(lines) > cardTitleMaxLines {
		lines = lines[:cardTitleMaxLines]
		last := lines[cardTitleMaxLines-1]
		lines[cardTitleMaxLines-1] = truncate.StringWithTail(last+" …", uint(width), "…")
	}
	for i, l := range lines {
		// words longer than the card are not broken by wordwrap
		lines[i] = truncate.StringWithTail(l, uint(width), "…")
	}
	return strings.Join(lines, "\n")
}

// cardMeta returns up to two option or person values shown under the title
func cardMeta(rec *models.Record, muted bool) []string {
	schema := models.SchemaFor(rec.Kind)
	var out []string
	for _, f := range schema.Fields {
		if f.Key == schema.StatusField || f.Key == schema.TitleField {
			continue
		}
		if f.Type != models.FieldEnum && f.Type != models.FieldUser {
			continue
		}
		if muted && f.Type == models.FieldUser {
			continue
		}
		if v := rec.Get(f.Key); v != "" {
			out = append(out, v)
		}
		if len(out) == 2 {
			break
		}
	}
	return out
}
