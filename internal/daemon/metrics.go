package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	Requests       atomic.Int64
	Saves          atomic.Int64
	Deletes        atomic.Int64
	Rejections     atomic.Int64
	Failures       atomic.Int64
	ActiveRequests atomic.Int32
	StartTime      time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// begin counts a request in flight and returns the func that ends it
func (m *Metrics) begin() func() {
	m.Requests.Add(1)
	m.ActiveRequests.Add(1)
	return func() { m.ActiveRequests.Add(-1) }
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Requests       int64     `json:"requests"`
	Saves          int64     `json:"saves"`
	Deletes        int64     `json:"deletes"`
	Rejections     int64     `json:"rejections"`
	Failures       int64     `json:"failures"`
	ActiveRequests int32     `json:"active_requests"`
	StartTime      time.Time `json:"start_time"`
	Uptime         string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:       m.Requests.Load(),
		Saves:          m.Saves.Load(),
		Deletes:        m.Deletes.Load(),
		Rejections:     m.Rejections.Load(),
		Failures:       m.Failures.Load(),
		ActiveRequests: m.ActiveRequests.Load(),
		StartTime:      m.StartTime,
		Uptime:         time.Since(m.StartTime).Round(time.Second).String(),
	}
}
