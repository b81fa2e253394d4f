package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		ColumnBorder:   "#808080",
		CardBorder:     "#5F5F5F",
		SelectedBorder: "#FFFFFF",
		SelectedBg:     "#3A3A3A",
		Separator:      "#A8A8A8",
		Locked:         "#5F5F5F",
		Pending:        "#D0D0D0",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#303030",
		WarningFg: "#FFFFFF",
		WarningBg: "#4E4E4E",
		ErrorFg:   "#000000",
		ErrorBg:   "#D0D0D0",

		StatusBarBg:   "#303030",
		StatusBarText: "#FFFFFF",
	}
}
