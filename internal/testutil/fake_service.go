package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/recordservice"
)

// SaveCall records one Save the fake received
type SaveCall struct {
	Kind    models.EntityKind
	ID      int64
	Changed map[string]string
}

// FakeService is an in-memory recordservice.Service with scriptable responses.
// By default Save merges the changed fields into the stored record and returns
// the whole record as canonical.
type FakeService struct {
	mu      sync.Mutex
	records map[models.EntityKind][]*models.Record
	nextID  int64

	// LookupsValue is returned by Lookups; nil means models.DefaultLookups()
	LookupsValue *models.Lookups

	// ListErr makes every List call fail
	ListErr error
	// SaveErr makes every Save call fail
	SaveErr error
	// DeleteErr makes every Delete call fail
	DeleteErr error
	// Canonical overrides individual fields of the canonical response
	Canonical map[string]string

	Saves   []SaveCall
	Deletes []int64
}

// Compile-time verification that *FakeService implements recordservice.Service
var _ recordservice.Service = (*FakeService)(nil)

// NewFakeService creates an empty fake
func NewFakeService() *FakeService {
	return &FakeService{
		records: make(map[models.EntityKind][]*models.Record),
		nextID:  1,
	}
}

// Add stores a record and returns its assigned ID
func (f *FakeService) Add(kind models.EntityKind, fields map[string]string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := models.NewRecord(f.nextID, kind)
	for k, v := range fields {
		rec.Fields[k] = v
	}
	f.nextID++
	f.records[kind] = append(f.records[kind], rec)
	return rec.ID
}

// AddTasks stores one task per status, titled "Task 1", "Task 2", ...
func (f *FakeService) AddTasks(statuses ...string) []int64 {
	ids := make([]int64, 0, len(statuses))
	for i, st := range statuses {
		ids = append(ids, f.Add(models.KindTasks, map[string]string{
			"title":    fmt.Sprintf("Task %d", i+1),
			"status":   st,
			"priority": "Medium",
			"project":  "MakerLab Launch",
		}))
	}
	return ids
}

// Stored returns a copy of a stored record
func (f *FakeService) Stored(kind models.EntityKind, id int64) *models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records[kind] {
		if rec.ID == id {
			return rec.Clone()
		}
	}
	return nil
}

// SaveCount returns how many saves were received
func (f *FakeService) SaveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Saves)
}

// List returns the stored records of a kind
func (f *FakeService) List(_ context.Context, kind models.EntityKind, _ recordservice.ListParams) ([]*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]*models.Record, 0, len(f.records[kind]))
	for _, rec := range f.records[kind] {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// Save merges changed into the stored record
func (f *FakeService) Save(_ context.Context, kind models.EntityKind, id int64, changed map[string]string) (*recordservice.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := make(map[string]string, len(changed))
	for k, v := range changed {
		copied[k] = v
	}
	f.Saves = append(f.Saves, SaveCall{Kind: kind, ID: id, Changed: copied})

	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	for _, rec := range f.records[kind] {
		if rec.ID != id {
			continue
		}
		for k, v := range changed {
			rec.Set(k, v)
		}
		for k, v := range f.Canonical {
			rec.Set(k, v)
		}
		return &recordservice.SaveResult{Canonical: rec.Clone().Fields}, nil
	}
	return nil, &recordservice.RemoteError{Code: recordservice.CodeNotFound, Message: "record no longer exists"}
}

// Delete removes a stored record
func (f *FakeService) Delete(_ context.Context, kind models.EntityKind, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deletes = append(f.Deletes, id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	list := f.records[kind]
	for i, rec := range list {
		if rec.ID == id {
			f.records[kind] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return &recordservice.RemoteError{Code: recordservice.CodeNotFound, Message: "record no longer exists"}
}

// Lookups returns LookupsValue or the defaults
func (f *FakeService) Lookups(_ context.Context) (*models.Lookups, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LookupsValue != nil {
		return f.LookupsValue, nil
	}
	return models.DefaultLookups(), nil
}
