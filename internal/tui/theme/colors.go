package theme

import "github.com/ianroy/makerflowPM/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	ColumnBorder   string
	CardBorder     string
	SelectedBorder string
	SelectedBg     string
	Separator      string
	Locked         string
	Pending        string
	Title          string
	Subtle         string
	Normal         string
	InfoFg         string
	InfoBg         string
	WarningFg      string
	WarningBg      string
	ErrorFg        string
	ErrorBg        string
	StatusBarBg    string
	StatusBarText  string
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Highlight = colors.Accent
	ColumnBorder = colors.ColumnBorder
	CardBorder = colors.CardBorder
	SelectedBorder = colors.SelectedBorder
	SelectedBg = colors.SelectedBg
	Separator = colors.Separator
	Locked = colors.Locked
	Pending = colors.Pending
	Title = colors.Title
	Subtle = colors.Subtle
	Normal = colors.Normal
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	WarningFg = colors.WarningFg
	WarningBg = colors.WarningBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
	StatusBarBg = colors.StatusBarBg
	StatusBarText = colors.StatusBarText
}
