package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cache"
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Color Validation Tests
// ============================================================================

func TestValidateColorHex(t *testing.T) {
	for _, color := range []string{"#FF0000", "#ff5733", "#AbCdEf"} {
		assert.NoError(t, ValidateColorHex(color), color)
	}

	invalid := []string{"FF0000", "#FFF", "#FF00000", "#GGGGGG", "#FF 000", "", "#"}
	for _, color := range invalid {
		err := ValidateColorHex(color)
		assert.ErrorIs(t, err, ErrUsage, "%q should be rejected", color)
	}
}

// ============================================================================
// Name Parsing Tests
// ============================================================================

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("  Intake ")
	require.NoError(t, err)
	assert.Equal(t, models.KindIntake, kind)

	_, err = ParseKind("widgets")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "partnerships")
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("LIST")
	require.NoError(t, err)
	assert.Equal(t, viewconfig.ModeList, mode)

	mode, err = ParseMode("kanban")
	require.NoError(t, err)
	assert.Equal(t, viewconfig.ModeKanban, mode)

	_, err = ParseMode("calendar")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestParseSortDir(t *testing.T) {
	tests := []struct {
		in   string
		want viewconfig.SortDir
	}{
		{"asc", viewconfig.SortAsc},
		{"DESC", viewconfig.SortDesc},
		{"none", viewconfig.SortNone},
		{"", viewconfig.SortNone},
	}
	for _, tt := range tests {
		got, err := ParseSortDir(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSortDir("sideways")
	assert.ErrorIs(t, err, ErrUsage)
}

// ============================================================================
// Column Addressing Tests
// ============================================================================

func TestColumnIndex(t *testing.T) {
	schema := models.SchemaFor(models.KindTasks)
	cfg := viewconfig.Default("local:tasks:all")
	cfg.ColumnEntry(2).Alias = "Urgency"
	cfg.List.Overlays = append(cfg.List.Overlays, viewconfig.OverlayColumn{ID: "ov-1", Title: "Notes", After: 0})
	overlay := len(schema.Fields)

	tests := []struct {
		ref  string
		want int
	}{
		{"title", 0},
		{"priority", 2},
		{"Priority", 2},
		{"urgency", 2},
		{"3", 3},
		{"Notes", overlay},
		{"ov-1", overlay},
		{fmt.Sprint(overlay), overlay},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ColumnIndex(schema, cfg, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ColumnIndex(schema, cfg, fmt.Sprint(overlay+1))
	assert.ErrorIs(t, err, ErrUsage)
	_, err = ColumnIndex(schema, cfg, "color")
	assert.ErrorIs(t, err, ErrUsage)
}

// ============================================================================
// Error Classification Tests
// ============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{"nil", nil, "", ExitSuccess},
		{"usage", Usagef("missing --to"), "INVALID_USAGE", ExitUsage},
		{"bad board key", fmt.Errorf("open: %w", viewconfig.ErrInvalidBoardKey), "INVALID_USAGE", ExitUsage},
		{"record not cached", fmt.Errorf("record 3: %w", cache.ErrRecordNotCached), "RECORD_NOT_FOUND", ExitNotFound},
		{"validation", &quickedit.ValidationError{RecordID: 1, Field: "title", Message: "Title is required"}, "VALIDATION_ERROR", ExitValidation},
		{
			"rejected",
			&quickedit.MutationRejected{RecordID: 1, Code: recordservice.CodeInvalidOption, Err: &recordservice.RemoteError{Code: recordservice.CodeInvalidOption}},
			"REJECTED", ExitValidation,
		},
		{
			"rejected missing",
			&quickedit.MutationRejected{RecordID: 1, Code: recordservice.CodeNotFound, Err: &recordservice.RemoteError{Code: recordservice.CodeNotFound}},
			"RECORD_NOT_FOUND", ExitNotFound,
		},
		{
			"rejected unreachable",
			&quickedit.MutationRejected{RecordID: 1, Code: "transport", Err: recordservice.ErrTransport},
			"SERVICE_UNREACHABLE", ExitError,
		},
		{"unknown field", fmt.Errorf("%w: color", quickedit.ErrUnknownField), "UNKNOWN_FIELD", ExitUsage},
		{"wrong scope", customize.ErrWrongScope, "INVALID_CUSTOMIZATION", ExitValidation},
		{"invalid value", fmt.Errorf("%w: bad color", customize.ErrInvalidValue), "INVALID_CUSTOMIZATION", ExitValidation},
		{"unknown command", board.ErrUnknownCommand, "INVALID_USAGE", ExitUsage},
		{"load unreachable", &cache.FetchError{BoardKey: "k", Err: recordservice.ErrTransport}, "SERVICE_UNREACHABLE", ExitError},
		{"load failed", &cache.FetchError{BoardKey: "k", Err: errors.New("bad row")}, "LOAD_FAILED", ExitDataErr},
		{"other", errors.New("boom"), "ERROR", ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, exit := Classify(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.exit, exit)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitNotFound, ExitCode(&ExitError{Code: ExitNotFound, Err: errors.New("gone")}))
	assert.Equal(t, ExitUsage, ExitCode(Usagef("bad flag")))
	assert.Equal(t, ExitError, ExitCode(errors.New("boom")))
}
