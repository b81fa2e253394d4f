package colors

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		// Primary accent color
		Accent: oniViolet,

		// Board element colors
		ColumnBorder:   sumiInk6,
		CardBorder:     sumiInk4,
		SelectedBorder: waveAqua2,
		SelectedBg:     waveBlue1,
		Separator:      springGreen,
		Locked:         fujiGray,
		Pending:        roninYellow,

		// Text colors
		Title:  crystalBlue,
		Subtle: fujiGray,
		Normal: fujiWhite,

		// Notification colors
		InfoFg:    dragonBlue,
		InfoBg:    winterBlue,
		WarningFg: roninYellow,
		WarningBg: winterYellow,
		ErrorFg:   samuraiRed,
		ErrorBg:   winterRed,

		StatusBarBg:   sumiInk3,
		StatusBarText: fujiWhite,
	}
}
