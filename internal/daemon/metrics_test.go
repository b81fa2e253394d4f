package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsBeginTracksActiveRequests(t *testing.T) {
	m := NewMetrics()

	end1 := m.begin()
	end2 := m.begin()
	assert.Equal(t, int32(2), m.GetSnapshot().ActiveRequests)

	end1()
	end2()
	snap := m.GetSnapshot()
	assert.Equal(t, int32(0), snap.ActiveRequests)
	assert.Equal(t, int64(2), snap.Requests)
}

func TestMetricsConcurrentUpdates(t *testing.T) {
	m := NewMetrics()
	const workers = 50

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			end := m.begin()
			m.Saves.Add(1)
			end()
		}()
	}
	wg.Wait()

	snap := m.GetSnapshot()
	assert.Equal(t, int64(workers), snap.Requests)
	assert.Equal(t, int64(workers), snap.Saves)
	assert.Zero(t, snap.ActiveRequests)
}

func TestMetricsSnapshotUptime(t *testing.T) {
	m := NewMetrics()
	m.StartTime = time.Now().Add(-90 * time.Second)

	assert.Equal(t, "1m30s", m.GetSnapshot().Uptime)
}

func TestMetricsEndpoint(t *testing.T) {
	server, _, _ := setupTestServer(t)
	h := server.Handler()

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap MetricsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, int64(2), snap.Requests)
	// the metrics request itself is still in flight while it is encoded
	assert.Equal(t, int32(1), snap.ActiveRequests)
}
