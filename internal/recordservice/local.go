package recordservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ianroy/makerflowPM/internal/database"
	"github.com/ianroy/makerflowPM/internal/models"
)

// Local is a Service backed by the SQLite repositories. It applies the same
// validation and derivation rules the hosted record service does, so boards
// can run fully offline against a local database.
type Local struct {
	repo *database.Repository
}

// NewLocal creates a local record service
func NewLocal(repo *database.Repository) *Local {
	return &Local{repo: repo}
}

// Compile-time verification that *Local implements Service
var _ Service = (*Local)(nil)

// List returns the records of a kind in load order. A scope other than
// "all" keeps the records whose team or space field names it.
func (s *Local) List(ctx context.Context, kind models.EntityKind, params ListParams) ([]*models.Record, error) {
	records, err := s.repo.Records.List(ctx, kind, params.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	scope := strings.TrimSpace(params.Scope)
	if scope == "" || strings.EqualFold(scope, "all") {
		return records, nil
	}
	schema := models.SchemaFor(kind)
	scoped := records[:0]
	for _, rec := range records {
		if inScope(schema, rec, scope) {
			scoped = append(scoped, rec)
		}
	}
	return scoped, nil
}

// inScope reports whether any team or space field of rec equals scope
func inScope(schema models.Schema, rec *models.Record, scope string) bool {
	for _, f := range schema.Fields {
		if f.Type != models.FieldTeam && f.Type != models.FieldSpace {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rec.Get(f.Key)), scope) {
			return true
		}
	}
	return false
}

// Save validates and applies a partial update, returning the stored row
func (s *Local) Save(ctx context.Context, kind models.EntityKind, id int64, changed map[string]string) (*SaveResult, error) {
	perm, err := s.repo.Lookups.Permissions(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	if !perm.CanEdit {
		return nil, reject(CodeForbidden, nil, "you do not have permission to edit %s", kind)
	}

	rec, err := s.repo.Records.Get(ctx, kind, id)
	if errors.Is(err, database.ErrRecordNotFound) {
		return nil, reject(CodeNotFound, map[string]string{"id": strconv.FormatInt(id, 10)}, "record %d no longer exists", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	schema := models.SchemaFor(kind)
	for key, raw := range changed {
		field, ok := schema.Field(key)
		if !ok {
			return nil, reject(CodeUnknownField, map[string]string{"field": key}, "unknown field %q", key)
		}
		value, err := s.canonicalize(ctx, field, raw)
		if err != nil {
			return nil, err
		}
		rec.Set(key, value)
	}

	if kind == models.KindIntake {
		rec.Set("score", strconv.Itoa(IntakeScore(
			atoiDefault(rec.Get("urgency"), 3),
			atoiDefault(rec.Get("impact"), 3),
			atoiDefault(rec.Get("effort"), 3),
		)))
	}

	if err := s.repo.Records.UpdateFields(ctx, kind, id, rec.Fields); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	slog.Debug("record saved", "kind", kind, "record_id", id, "fields", len(changed))
	return &SaveResult{Canonical: rec.Fields}, nil
}

// Delete removes a record when the kind's policy allows it
func (s *Local) Delete(ctx context.Context, kind models.EntityKind, id int64) error {
	perm, err := s.repo.Lookups.Permissions(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to load permissions: %w", err)
	}
	if !perm.CanDelete {
		return reject(CodeForbidden, nil, "you do not have permission to delete %s", kind)
	}

	rec, err := s.repo.Records.Get(ctx, kind, id)
	if errors.Is(err, database.ErrRecordNotFound) {
		return reject(CodeNotFound, map[string]string{"id": strconv.FormatInt(id, 10)}, "record %d no longer exists", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load record: %w", err)
	}

	if len(perm.DeleteRequiresStatus) > 0 && !containsFold(perm.DeleteRequiresStatus, rec.Status()) {
		return reject(CodeDeleteBlockedStatus,
			map[string]string{"statuses": strings.Join(perm.DeleteRequiresStatus, ", "), "status": rec.Status()},
			"cannot delete a record in status %q", rec.Status())
	}

	if err := s.repo.Records.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// Lookups returns option sets and per-kind permissions
func (s *Local) Lookups(ctx context.Context) (*models.Lookups, error) {
	l := models.DefaultLookups()

	var err error
	if l.Users, err = s.repo.Lookups.People(ctx, "user"); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if l.Teams, err = s.repo.Lookups.People(ctx, "team"); err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	if l.Spaces, err = s.repo.Lookups.People(ctx, "space"); err != nil {
		return nil, fmt.Errorf("failed to load spaces: %w", err)
	}

	for _, kind := range models.AllKinds {
		perm, err := s.repo.Lookups.Permissions(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to load permissions for %s: %w", kind, err)
		}
		l.Permissions[kind] = perm
	}
	return l, nil
}

// canonicalize validates a single incoming value and returns its stored form
func (s *Local) canonicalize(ctx context.Context, field models.FieldDef, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	params := map[string]string{"field": field.Key, "value": raw}

	if field.ReadOnly {
		return "", reject(CodeReadOnlyField, params, "%s is calculated and cannot be edited", field.Label)
	}

	if value == "" {
		switch {
		case field.Relation:
			return "", reject(CodeRequiredRelation, map[string]string{"relation": field.Label}, "%s is required", field.Label)
		case field.Required:
			return "", reject(CodeRequiredField, params, "%s cannot be empty", field.Label)
		}
		return "", nil
	}

	switch field.Type {
	case models.FieldEnum:
		for _, opt := range field.Options {
			if strings.EqualFold(opt, value) {
				return opt, nil
			}
		}
		return "", reject(CodeInvalidOption, params, "%q is not a valid %s", raw, strings.ToLower(field.Label))

	case models.FieldNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", reject(CodeInvalidNumber, params, "%s must be a number", field.Label)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil

	case models.FieldDate:
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return "", reject(CodeInvalidDate, params, "%s must be a date (YYYY-MM-DD)", field.Label)
		}
		return t.Format("2006-01-02"), nil

	case models.FieldUser, models.FieldTeam, models.FieldSpace:
		people, err := s.repo.Lookups.People(ctx, string(field.Type))
		if err != nil {
			return "", fmt.Errorf("failed to load %s lookups: %w", field.Type, err)
		}
		// an empty lookup table accepts free text
		if len(people) == 0 {
			return value, nil
		}
		for _, p := range people {
			if strings.EqualFold(p.Name, value) {
				return p.Name, nil
			}
		}
		return "", reject(CodeInvalidOption, params, "%q is not a known %s", raw, field.Type)
	}

	return value, nil
}

// IntakeScore derives the triage score of an intake request. Inputs are
// clamped to 1..5; effort lowers the score.
func IntakeScore(urgency, impact, effort int) int {
	clamp := func(v int) int {
		return min(max(v, models.MinIntakeFactor), models.MaxIntakeFactor)
	}
	return clamp(urgency) * clamp(impact) * (models.MaxIntakeFactor + 1 - clamp(effort))
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
