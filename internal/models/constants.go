package models

// ============================================================================
// STATUS SETS
// ============================================================================

var (
	TaskStatuses       = []string{"Todo", "In Progress", "Blocked", "Done"}
	ProjectStatuses    = []string{"Planned", "Active", "Blocked", "Complete"}
	IntakeStatuses     = []string{"Triage", "In Review", "Planned", "Done"}
	AssetStatuses      = []string{"Operational", "Needs Service", "Down"}
	ConsumableStatuses = []string{"In Stock", "Low Stock", "Out of Stock", "Ordered"}
	PartnerStages      = []string{"Discovery", "Active", "Pilot", "Dormant"}
)

// ============================================================================
// OPTION SETS
// ============================================================================

var (
	Priorities    = []string{"Low", "Medium", "High", "Critical"}
	Energies      = []string{"Low", "Medium", "High"}
	PartnerHealth = []string{"Strong", "Medium", "At Risk"}
)

// ============================================================================
// SCORING
// ============================================================================

// Intake scoring inputs are clamped to this range
const (
	MinIntakeFactor = 1
	MaxIntakeFactor = 5
)
