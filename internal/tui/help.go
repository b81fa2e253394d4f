package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/ianroy/makerflowPM/internal/tui/components"
	"github.com/ianroy/makerflowPM/internal/tui/state"
	"github.com/muesli/reflow/wordwrap"
)

// recentNotices is how many past notices the help screen lists
const recentNotices = 5

type helpGroup struct {
	Title    string
	Bindings []key.Binding
}

// renderHelp lists every binding by section, followed by the latest notices
func renderHelp(groups []helpGroup, notices []state.Notification, width int) string {
	keyWidth := 0
	for _, g := range groups {
		for _, b := range g.Bindings {
			keyWidth = max(keyWidth, len(b.Help().Key))
		}
	}

	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, g := range groups {
		b.WriteString("\n")
		b.WriteString(components.TitleStyle.Render(g.Title))
		b.WriteString("\n")
		for _, binding := range g.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-*s  %s\n", keyWidth, h.Key, h.Desc)
		}
	}

	if len(notices) > 0 {
		b.WriteString("\n")
		b.WriteString(components.TitleStyle.Render("Recent messages"))
		b.WriteString("\n")
		start := max(len(notices)-recentNotices, 0)
		wrap := max(width-8, 20)
		for _, n := range notices[start:] {
			b.WriteString(components.SubtleStyle.Render(wordwrap.String("• "+n.Message, wrap)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(components.SubtleStyle.Render("esc to close"))
	return components.PromptBoxStyle.Render(b.String())
}
