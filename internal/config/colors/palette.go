package colors

// Kanagawa palette entries used by the wave, dragon and lotus presets
const (
	sumiInk3     = "#1F1F28"
	sumiInk4     = "#2A2A37"
	sumiInk6     = "#54546D"
	waveBlue1    = "#223249"
	waveAqua2    = "#7AA89F"
	oniViolet    = "#957FB8"
	crystalBlue  = "#7E9CD8"
	springGreen  = "#98BB6C"
	fujiWhite    = "#DCD7BA"
	fujiGray     = "#727169"
	samuraiRed   = "#E82424"
	roninYellow  = "#FF9E3B"
	winterRed    = "#43242B"
	winterBlue   = "#252535"
	winterYellow = "#49443C"
	dragonBlue   = "#658594"

	dragonBlack1 = "#0D0C0C"
	dragonBlack4 = "#282727"
	dragonBlack6 = "#625E5A"
	dragonViolet = "#8992A7"
	dragonBlue2  = "#8BA4B0"
	dragonGreen2 = "#87A987"
	dragonRed    = "#C4746E"
	dragonWhite  = "#C5C9C5"
	dragonGray   = "#A6A69C"
	dragonYellow = "#C4B28A"

	lotusWhite3  = "#F2ECBC"
	lotusWhite4  = "#E7DBA0"
	lotusInk1    = "#545464"
	lotusViolet4 = "#624C83"
	lotusBlue4   = "#4D699B"
	lotusGreen   = "#6F894E"
	lotusRed     = "#C84053"
	lotusGray3   = "#8A8980"
	lotusYellow  = "#77713F"
)
