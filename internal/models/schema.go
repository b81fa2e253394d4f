package models

// EntityKind identifies the type of records shown on a board
type EntityKind string

const (
	KindTasks        EntityKind = "tasks"
	KindProjects     EntityKind = "projects"
	KindIntake       EntityKind = "intake"
	KindAssets       EntityKind = "assets"
	KindConsumables  EntityKind = "consumables"
	KindPartnerships EntityKind = "partnerships"
)

// AllKinds lists every entity kind in menu order
var AllKinds = []EntityKind{
	KindTasks,
	KindProjects,
	KindIntake,
	KindAssets,
	KindConsumables,
	KindPartnerships,
}

// FieldType describes how a field is edited and compared
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldEnum   FieldType = "enum"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldUser   FieldType = "user"
	FieldTeam   FieldType = "team"
	FieldSpace  FieldType = "space"
)

// IsReference reports whether the field points at a user, team or space
func (t FieldType) IsReference() bool {
	return t == FieldUser || t == FieldTeam || t == FieldSpace
}

// FieldDef declares one named field of an entity kind
type FieldDef struct {
	Key      string
	Label    string
	Type     FieldType
	Options  []string // fixed options for enum fields
	Required bool     // the record service rejects clearing it
	ReadOnly bool     // derived by the record service, never edited inline
	Relation bool     // a required relation (e.g. a task's project)
}

// Schema is the ordered field layout of one entity kind
type Schema struct {
	Kind        EntityKind
	Label       string
	TitleField  string
	StatusField string
	Statuses    []string
	Fields      []FieldDef
}

// Field looks up a field definition by key
func (s Schema) Field(key string) (FieldDef, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDef{}, false
}

// FieldIndex returns the column index of a field, or -1
func (s Schema) FieldIndex(key string) int {
	for i, f := range s.Fields {
		if f.Key == key {
			return i
		}
	}
	return -1
}

// HasStatus reports whether status belongs to the kind's status set
func (s Schema) HasStatus(status string) bool {
	for _, st := range s.Statuses {
		if st == status {
			return true
		}
	}
	return false
}

// ParseKind validates a kind name
func ParseKind(name string) (EntityKind, bool) {
	for _, k := range AllKinds {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// SchemaFor returns the schema of a kind. Unknown kinds get an empty schema.
func SchemaFor(kind EntityKind) Schema {
	if s, ok := schemas[kind]; ok {
		return s
	}
	return Schema{Kind: kind, Label: string(kind)}
}

var schemas = map[EntityKind]Schema{
	KindTasks: {
		Kind:        KindTasks,
		Label:       "Tasks",
		TitleField:  "title",
		StatusField: "status",
		Statuses:    TaskStatuses,
		Fields: []FieldDef{
			{Key: "title", Label: "Title", Type: FieldText, Required: true},
			{Key: "status", Label: "Status", Type: FieldEnum, Options: TaskStatuses, Required: true},
			{Key: "priority", Label: "Priority", Type: FieldEnum, Options: Priorities},
			{Key: "assignee", Label: "Assignee", Type: FieldUser},
			{Key: "project", Label: "Project", Type: FieldText, Required: true, Relation: true},
			{Key: "team", Label: "Team", Type: FieldTeam},
			{Key: "space", Label: "Space", Type: FieldSpace},
			{Key: "due_date", Label: "Due", Type: FieldDate},
			{Key: "energy", Label: "Energy", Type: FieldEnum, Options: Energies},
			{Key: "estimate_hours", Label: "Estimate", Type: FieldNumber},
			{Key: "description", Label: "Description", Type: FieldText},
		},
	},
	KindProjects: {
		Kind:        KindProjects,
		Label:       "Projects",
		TitleField:  "name",
		StatusField: "status",
		Statuses:    ProjectStatuses,
		Fields: []FieldDef{
			{Key: "name", Label: "Name", Type: FieldText, Required: true},
			{Key: "status", Label: "Status", Type: FieldEnum, Options: ProjectStatuses, Required: true},
			{Key: "priority", Label: "Priority", Type: FieldEnum, Options: Priorities},
			{Key: "owner", Label: "Owner", Type: FieldUser},
			{Key: "lane", Label: "Lane", Type: FieldText},
			{Key: "team", Label: "Team", Type: FieldTeam},
			{Key: "space", Label: "Space", Type: FieldSpace},
			{Key: "start_date", Label: "Start", Type: FieldDate},
			{Key: "due_date", Label: "Due", Type: FieldDate},
			{Key: "progress_pct", Label: "Progress %", Type: FieldNumber},
			{Key: "description", Label: "Description", Type: FieldText},
		},
	},
	KindIntake: {
		Kind:        KindIntake,
		Label:       "Intake",
		TitleField:  "title",
		StatusField: "status",
		Statuses:    IntakeStatuses,
		Fields: []FieldDef{
			{Key: "title", Label: "Title", Type: FieldText, Required: true},
			{Key: "status", Label: "Status", Type: FieldEnum, Options: IntakeStatuses, Required: true},
			{Key: "requestor_name", Label: "Requestor", Type: FieldText},
			{Key: "lane", Label: "Lane", Type: FieldText},
			{Key: "urgency", Label: "Urgency", Type: FieldNumber},
			{Key: "impact", Label: "Impact", Type: FieldNumber},
			{Key: "effort", Label: "Effort", Type: FieldNumber},
			{Key: "score", Label: "Score", Type: FieldNumber, ReadOnly: true},
			{Key: "owner", Label: "Owner", Type: FieldUser},
			{Key: "details", Label: "Details", Type: FieldText},
		},
	},
	KindAssets: {
		Kind:        KindAssets,
		Label:       "Assets",
		TitleField:  "name",
		StatusField: "status",
		Statuses:    AssetStatuses,
		Fields: []FieldDef{
			{Key: "name", Label: "Name", Type: FieldText, Required: true},
			{Key: "status", Label: "Status", Type: FieldEnum, Options: AssetStatuses, Required: true},
			{Key: "space", Label: "Space", Type: FieldSpace},
			{Key: "asset_type", Label: "Type", Type: FieldText},
			{Key: "last_maintenance", Label: "Last Service", Type: FieldDate},
			{Key: "next_maintenance", Label: "Next Service", Type: FieldDate},
			{Key: "cert_name", Label: "Certification", Type: FieldText},
			{Key: "owner", Label: "Owner", Type: FieldUser},
			{Key: "notes", Label: "Notes", Type: FieldText},
		},
	},
	KindConsumables: {
		Kind:        KindConsumables,
		Label:       "Consumables",
		TitleField:  "name",
		StatusField: "status",
		Statuses:    ConsumableStatuses,
		Fields: []FieldDef{
			{Key: "name", Label: "Name", Type: FieldText, Required: true},
			{Key: "status", Label: "Status", Type: FieldEnum, Options: ConsumableStatuses, Required: true},
			{Key: "space", Label: "Space", Type: FieldSpace, Required: true, Relation: true},
			{Key: "quantity_on_hand", Label: "On Hand", Type: FieldNumber},
			{Key: "reorder_point", Label: "Reorder At", Type: FieldNumber},
			{Key: "owner", Label: "Owner", Type: FieldUser},
			{Key: "notes", Label: "Notes", Type: FieldText},
		},
	},
	KindPartnerships: {
		Kind:        KindPartnerships,
		Label:       "Partnerships",
		TitleField:  "partner_name",
		StatusField: "stage",
		Statuses:    PartnerStages,
		Fields: []FieldDef{
			{Key: "partner_name", Label: "Partner", Type: FieldText, Required: true},
			{Key: "stage", Label: "Stage", Type: FieldEnum, Options: PartnerStages, Required: true},
			{Key: "school", Label: "School", Type: FieldText},
			{Key: "health", Label: "Health", Type: FieldEnum, Options: PartnerHealth},
			{Key: "owner", Label: "Owner", Type: FieldUser},
			{Key: "last_contact", Label: "Last Contact", Type: FieldDate},
			{Key: "next_followup", Label: "Next Follow-up", Type: FieldDate},
			{Key: "notes", Label: "Notes", Type: FieldText},
		},
	},
}
