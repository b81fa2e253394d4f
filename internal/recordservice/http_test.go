package recordservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestHTTPListForwardsParams(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, "fab", r.URL.Query().Get("scope"))
		assert.Equal(t, "laser", r.URL.Query().Get("search"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"ok": true,
			"records": []map[string]any{
				{"id": 7, "fields": map[string]string{"title": "Laser training", "status": "Todo"}},
			},
		})
	})

	records, err := client.List(context.Background(), models.KindTasks, ListParams{Scope: "fab", Search: "laser"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].ID)
	assert.Equal(t, models.KindTasks, records[0].Kind)
	assert.Equal(t, "Laser training", records[0].Title())
}

func TestHTTPSaveReturnsCanonical(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tasks/save", r.URL.Path)

		var body struct {
			ID     int64             `json:"id"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(3), body.ID)
		assert.Equal(t, "Critical", body.Fields["priority"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"ok":     true,
			"fields": map[string]string{"priority": "High", "title": "Kept"},
		})
	})

	res, err := client.Save(context.Background(), models.KindTasks, 3, map[string]string{"priority": "Critical"})
	require.NoError(t, err)
	assert.Equal(t, "High", res.Canonical["priority"])
}

func TestHTTPStructuredRejection(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
			"ok": false,
			"error": map[string]any{
				"code":    CodeRequiredRelation,
				"message": "Project is required",
				"params":  map[string]string{"relation": "Project"},
			},
		})
	})

	_, err := client.Save(context.Background(), models.KindTasks, 1, map[string]string{"project": ""})
	re, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, CodeRequiredRelation, re.Code)
	assert.Equal(t, "Project", re.Param("relation"))
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestHTTPServerFailureIsTransport(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.List(context.Background(), models.KindTasks, ListParams{})
	assert.ErrorIs(t, err, ErrTransport)

	err = client.Delete(context.Background(), models.KindTasks, 1)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestHTTPUnreachableIsTransport(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Lookups(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestHTTPLookups(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/lookups", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"ok": true,
			"lookups": map[string]any{
				"statuses":   map[string][]string{"tasks": {"Todo", "Done"}},
				"priorities": []string{"Low", "High"},
				"users":      []map[string]any{{"id": 1, "name": "Alex"}},
				"permissions": map[string]any{
					"tasks": map[string]any{"can_edit": true, "can_delete": true, "delete_requires_status": []string{"Done"}},
				},
			},
		})
	})

	l, err := client.Lookups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Todo", "Done"}, l.StatusesFor(models.KindTasks))
	require.Len(t, l.Users, 1)
	assert.Equal(t, "Alex", l.Users[0].Name)
	assert.Equal(t, []string{"Done"}, l.PermissionsFor(models.KindTasks).DeleteRequiresStatus)
	assert.False(t, l.PermissionsFor(models.KindAssets).CanEdit)
}
