package colors

// Dragon returns the Kanagawa Dragon color scheme (dark theme with warm earth tones)
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset: "dragon",

		Accent: dragonViolet,

		ColumnBorder:   dragonBlack6,
		CardBorder:     dragonBlack4,
		SelectedBorder: dragonBlue2,
		SelectedBg:     dragonBlack4,
		Separator:      dragonGreen2,
		Locked:         dragonBlack6,
		Pending:        dragonYellow,

		Title:  dragonBlue2,
		Subtle: dragonGray,
		Normal: dragonWhite,

		InfoFg:    dragonBlue2,
		InfoBg:    dragonBlack1,
		WarningFg: dragonYellow,
		WarningBg: dragonBlack4,
		ErrorFg:   dragonRed,
		ErrorBg:   dragonBlack1,

		StatusBarBg:   dragonBlack4,
		StatusBarText: dragonWhite,
	}
}
