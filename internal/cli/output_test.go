package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/ianroy/makerflowPM/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Types
// ============================================================================

type recordSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func (r *recordSummary) GetID() int { return r.ID }

func (r *recordSummary) Human() string { return "#" + r.Title }

type plainData struct {
	Name string
}

// capture redirects stdout or stderr while fn runs
func capture(t *testing.T, stream **os.File, fn func()) string {
	t.Helper()
	old := *stream
	r, w, err := os.Pipe()
	require.NoError(t, err)
	*stream = w

	fn()

	_ = w.Close()
	*stream = old
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func decode(t *testing.T, output string) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result), "output: %s", output)
	return result
}

// ============================================================================
// Success Tests
// ============================================================================

func TestSuccess_JSONWrapsData(t *testing.T) {
	out := capture(t, &os.Stdout, func() {
		f := &OutputFormatter{JSON: true}
		require.NoError(t, f.Success(&recordSummary{ID: 7, Title: "Laser"}))
	})

	result := decode(t, out)
	assert.Equal(t, true, result["success"])
	data := result["data"].(map[string]any)
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "Laser", data["title"])
}

func TestSuccess_QuietPrintsID(t *testing.T) {
	out := capture(t, &os.Stdout, func() {
		f := &OutputFormatter{Quiet: true}
		require.NoError(t, f.Success(&recordSummary{ID: 7, Title: "Laser"}))
	})
	assert.Equal(t, "7\n", out)

	// quiet wins over JSON when the result has an ID
	out = capture(t, &os.Stdout, func() {
		f := &OutputFormatter{JSON: true, Quiet: true}
		require.NoError(t, f.Success(&recordSummary{ID: 9}))
	})
	assert.Equal(t, "9\n", out)
}

func TestSuccess_QuietWithoutIDPrintsNothing(t *testing.T) {
	out := capture(t, &os.Stdout, func() {
		f := &OutputFormatter{Quiet: true}
		require.NoError(t, f.Success(plainData{Name: "x"}))
	})
	assert.Empty(t, out)
}

func TestSuccess_Human(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"humanizer", &recordSummary{ID: 1, Title: "Laser"}, "#Laser\n"},
		{"string", "Cancelled", "Cancelled\n"},
		{"struct", plainData{Name: "x"}, "{Name:x}\n"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := capture(t, &os.Stdout, func() {
				require.NoError(t, (&OutputFormatter{}).Success(tt.data))
			})
			assert.Equal(t, tt.want, out)
		})
	}
}

// ============================================================================
// Error Tests
// ============================================================================

func TestErrorWithSuggestion_JSON(t *testing.T) {
	out := capture(t, &os.Stdout, func() {
		f := &OutputFormatter{JSON: true}
		require.NoError(t, f.ErrorWithSuggestion("RECORD_NOT_FOUND", "record 3 is gone", "run board show"))
	})

	result := decode(t, out)
	assert.Equal(t, false, result["success"])
	errData := result["error"].(map[string]any)
	assert.Equal(t, "RECORD_NOT_FOUND", errData["code"])
	assert.Equal(t, "record 3 is gone", errData["message"])
	assert.Equal(t, "run board show", errData["suggestion"])

	out = capture(t, &os.Stdout, func() {
		require.NoError(t, (&OutputFormatter{JSON: true}).Error("CODE", "message"))
	})
	_, hasSuggestion := decode(t, out)["error"].(map[string]any)["suggestion"]
	assert.False(t, hasSuggestion)
}

func TestErrorWithSuggestion_HumanGoesToStderr(t *testing.T) {
	var stdout string
	stderr := capture(t, &os.Stderr, func() {
		stdout = capture(t, &os.Stdout, func() {
			require.NoError(t, (&OutputFormatter{}).ErrorWithSuggestion("X", "Title is required", "pass --value"))
		})
	})

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: Title is required")
	assert.Contains(t, stderr, "Suggestion: pass --value")
	assert.False(t, strings.Contains(capture(t, &os.Stderr, func() {
		_ = (&OutputFormatter{}).Error("X", "plain")
	}), "Suggestion:"))
}

func TestFail_ReportsAndCarriesExitCode(t *testing.T) {
	var err error
	out := capture(t, &os.Stdout, func() {
		err = Fail(&OutputFormatter{JSON: true}, fmt.Errorf("record 3: %w", cache.ErrRecordNotCached))
	})

	var exit *ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, ExitNotFound, exit.Code)
	assert.ErrorIs(t, err, cache.ErrRecordNotCached)
	assert.Equal(t, "RECORD_NOT_FOUND", decode(t, out)["error"].(map[string]any)["code"])
}
