package models

// Permissions are the per-kind flags the record service grants the current user
type Permissions struct {
	CanEdit   bool
	CanDelete bool
	// DeleteRequiresStatus lists the statuses a record must be in before it
	// may be deleted. Empty means any status.
	DeleteRequiresStatus []string
}

// Person is a user, team or space option shown in reference controls
type Person struct {
	ID   int64
	Name string
}

// Lookups are the enumerated option sets used to populate controls
type Lookups struct {
	Statuses    map[EntityKind][]string
	Priorities  []string
	Users       []Person
	Teams       []Person
	Spaces      []Person
	Permissions map[EntityKind]Permissions
}

// PermissionsFor returns the permissions of a kind. Unknown kinds are read-only.
func (l *Lookups) PermissionsFor(kind EntityKind) Permissions {
	if l == nil || l.Permissions == nil {
		return Permissions{}
	}
	return l.Permissions[kind]
}

// StatusesFor returns the status set for a kind, falling back to the built-in schema
func (l *Lookups) StatusesFor(kind EntityKind) []string {
	if l != nil && l.Statuses != nil {
		if st, ok := l.Statuses[kind]; ok && len(st) > 0 {
			return st
		}
	}
	return SchemaFor(kind).Statuses
}

// DefaultLookups returns the option sets of the built-in schemas with full permissions
func DefaultLookups() *Lookups {
	l := &Lookups{
		Statuses:    make(map[EntityKind][]string),
		Priorities:  Priorities,
		Permissions: make(map[EntityKind]Permissions),
	}
	for _, k := range AllKinds {
		l.Statuses[k] = SchemaFor(k).Statuses
		l.Permissions[k] = Permissions{CanEdit: true, CanDelete: true}
	}
	return l
}
