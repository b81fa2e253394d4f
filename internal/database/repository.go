package database

import "database/sql"

// Repository composes the domain-specific repositories over one connection
type Repository struct {
	Records     *RecordRepo
	Lookups     *LookupRepo
	ViewConfigs *ViewConfigRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Records:     NewRecordRepo(db),
		Lookups:     NewLookupRepo(db),
		ViewConfigs: NewViewConfigRepo(db),
	}
}
