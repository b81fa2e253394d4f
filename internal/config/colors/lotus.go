package colors

// Lotus returns the Kanagawa Lotus color scheme (light theme)
func Lotus() *ColorScheme {
	return &ColorScheme{
		Preset: "lotus",

		Accent: lotusViolet4,

		ColumnBorder:   lotusGray3,
		CardBorder:     lotusWhite4,
		SelectedBorder: lotusBlue4,
		SelectedBg:     lotusWhite4,
		Separator:      lotusGreen,
		Locked:         lotusGray3,
		Pending:        lotusYellow,

		Title:  lotusBlue4,
		Subtle: lotusGray3,
		Normal: lotusInk1,

		InfoFg:    lotusBlue4,
		InfoBg:    lotusWhite3,
		WarningFg: lotusYellow,
		WarningBg: lotusWhite3,
		ErrorFg:   lotusRed,
		ErrorBg:   lotusWhite3,

		StatusBarBg:   lotusViolet4,
		StatusBarText: lotusWhite3,
	}
}
