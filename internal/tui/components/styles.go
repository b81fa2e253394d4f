// Package components provides reusable UI components and styles.
// Call InitStyles() before use to initialize all style variables.
package components

import (
	"charm.land/lipgloss/v2"
	"github.com/ianroy/makerflowPM/internal/config/colors"
	"github.com/ianroy/makerflowPM/internal/tui/theme"
)

// These are cached to avoid recomputing on every redraw.
var (
	// ColumnStyle defines the appearance of kanban board columns
	ColumnStyle lipgloss.Style

	// SelectedColumnStyle is ColumnStyle with the selection border
	SelectedColumnStyle lipgloss.Style

	// CardStyle defines the appearance of individual records as cards
	CardStyle lipgloss.Style

	// TitleStyle defines the appearance of titles (column names, app header)
	TitleStyle lipgloss.Style

	// SeparatorStyle renders group-by separators
	SeparatorStyle lipgloss.Style

	// LockedStyle marks restrict-edit headers and read-only cells
	LockedStyle lipgloss.Style

	// PendingStyle marks values still waiting for the record service
	PendingStyle lipgloss.Style

	// SubtleStyle is used for counts, hints and empty states
	SubtleStyle lipgloss.Style

	// SelectedRowStyle highlights the selected list row
	SelectedRowStyle lipgloss.Style

	// PromptBoxStyle frames the search, filter and rename prompt
	PromptBoxStyle lipgloss.Style

	// InfoBannerStyle defines the appearance of info notifications (blue)
	InfoBannerStyle lipgloss.Style

	// WarningBannerStyle defines the appearance of warning notifications (yellow)
	WarningBannerStyle lipgloss.Style

	// ErrorBannerStyle defines the appearance of error messages (red)
	ErrorBannerStyle lipgloss.Style

	// IndicatorStyle defines the appearance of scroll indicators
	IndicatorStyle lipgloss.Style

	// StatusBarStyle defines the base style for the status bar
	StatusBarStyle lipgloss.Style
)

func init() {
	InitStyles(*colors.Default())
}

// InitStyles initializes all styles with the given color scheme
func InitStyles(colors colors.ColorScheme) {
	// Initialize theme colors
	theme.Init(colors)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.ColumnBorder)).
		PaddingLeft(1).
		PaddingRight(1)

	SelectedColumnStyle = ColumnStyle.
		BorderForeground(lipgloss.Color(colors.SelectedBorder))

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colors.CardBorder)).
		Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Separator)).
		Italic(true)

	LockedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Locked))

	PendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Pending)).
		Italic(true)

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	SelectedRowStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Background(lipgloss.Color(colors.SelectedBg)).
		Bold(true)

	PromptBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(0, 1)

	InfoBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	WarningBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Bold(true).
		Padding(0, 1)

	IndicatorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.StatusBarText)).
		Background(lipgloss.Color(colors.StatusBarBg))
}

// Colored renders text in a hex color, or unchanged when the color is empty
func Colored(text, hexColor string) string {
	if hexColor == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(text)
}
