package components

const (
	DefaultColumnWidth   = 32 // column width when the terminal width is unknown
	MinColumnWidth       = 18
	CollapsedColumnWidth = 6
	columnBorderOverhead = 4 // left/right border + padding
	cardBorderOverhead   = 4 // left/right border + padding
	cardTitleMaxLines    = 2
	headerLines          = 2  // column name and count, filter or blank line
	indicatorLines       = 2  // "▲ more above" and "▼ more below"
	cardHeight           = 5  // border + two title lines + meta line
	ListCellMaxWidth     = 24 // widest list cell before truncation
)
