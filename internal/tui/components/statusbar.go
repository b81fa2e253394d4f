package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Notice levels shown in the status bar
const (
	NoticeInfo = iota
	NoticeWarning
	NoticeError
)

// StatusBarProps is everything the bottom bar shows
type StatusBarProps struct {
	Width   int
	Board   string // board label, e.g. "Tasks · Kanban"
	Search  string
	Pending int
	Notice  string
	Level   int
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: board label, search and the latest notice
// Right side: pending saves and "press ? for help"
func RenderStatusBar(props StatusBarProps) string {
	left := []string{TitleStyle.Render(props.Board)}
	if props.Search != "" {
		left = append(left, SubtleStyle.Render("/"+props.Search))
	}
	if props.Notice != "" {
		switch props.Level {
		case NoticeError:
			left = append(left, ErrorBannerStyle.Render(props.Notice))
		case NoticeWarning:
			left = append(left, WarningBannerStyle.Render(props.Notice))
		default:
			left = append(left, InfoBannerStyle.Render(props.Notice))
		}
	}
	leftRendered := strings.Join(left, "  ")

	right := "press ? for help"
	if props.Pending > 0 {
		right = PendingStyle.Render(pluralSaves(props.Pending)) + "  " + right
	}
	rightRendered := SubtleStyle.Render(right)

	// Calculate space between left and right text
	gapWidth := max(props.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 1)
	gap := strings.Repeat(" ", gapWidth)

	return StatusBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, rightRendered))
}

func pluralSaves(n int) string {
	if n == 1 {
		return "1 save pending"
	}
	return fmt.Sprintf("%d saves pending", n)
}
