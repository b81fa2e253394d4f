package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Records
	MoveCardLeft  string `yaml:"move_card_left"`
	MoveCardRight string `yaml:"move_card_right"`
	CyclePriority string `yaml:"cycle_priority"`
	EditField     string `yaml:"edit_field"`
	DeleteRecord  string `yaml:"delete_record"`

	// Customization
	Search    string `yaml:"search"`
	Filter    string `yaml:"filter"`
	Sort      string `yaml:"sort"`
	Hide      string `yaml:"hide"`
	Collapse  string `yaml:"collapse"`
	Rename    string `yaml:"rename"`
	ResetView string `yaml:"reset_view"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevRow    string `yaml:"prev_row"`
	NextRow    string `yaml:"next_row"`
	ToggleView string `yaml:"toggle_view"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Records
		MoveCardLeft:  "H",
		MoveCardRight: "L",
		CyclePriority: "p",
		EditField:     "e",
		DeleteRecord:  "d",

		// Customization
		Search:    "/",
		Filter:    "f",
		Sort:      "s",
		Hide:      "x",
		Collapse:  "c",
		Rename:    "r",
		ResetView: "X",

		// Navigation
		PrevColumn: "h",
		NextColumn: "l",
		PrevRow:    "k",
		NextRow:    "j",
		ToggleView: "v",

		// Other
		Refresh:  "R",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.MoveCardLeft == "" {
		k.MoveCardLeft = defaults.MoveCardLeft
	}
	if k.MoveCardRight == "" {
		k.MoveCardRight = defaults.MoveCardRight
	}
	if k.CyclePriority == "" {
		k.CyclePriority = defaults.CyclePriority
	}
	if k.EditField == "" {
		k.EditField = defaults.EditField
	}
	if k.DeleteRecord == "" {
		k.DeleteRecord = defaults.DeleteRecord
	}
	if k.Search == "" {
		k.Search = defaults.Search
	}
	if k.Filter == "" {
		k.Filter = defaults.Filter
	}
	if k.Sort == "" {
		k.Sort = defaults.Sort
	}
	if k.Hide == "" {
		k.Hide = defaults.Hide
	}
	if k.Collapse == "" {
		k.Collapse = defaults.Collapse
	}
	if k.Rename == "" {
		k.Rename = defaults.Rename
	}
	if k.ResetView == "" {
		k.ResetView = defaults.ResetView
	}
	if k.PrevColumn == "" {
		k.PrevColumn = defaults.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = defaults.NextColumn
	}
	if k.PrevRow == "" {
		k.PrevRow = defaults.PrevRow
	}
	if k.NextRow == "" {
		k.NextRow = defaults.NextRow
	}
	if k.ToggleView == "" {
		k.ToggleView = defaults.ToggleView
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
