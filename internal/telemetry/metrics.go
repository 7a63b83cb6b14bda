// Package telemetry counts backend calls in-process and, when configured,
// exports them to an OpenTelemetry collector.
package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks backend call counts and latency. It implements api.Recorder.
type Metrics struct {
	// Counters
	callsTotal    atomic.Int64
	failuresTotal atomic.Int64

	// Gauges with mutex for complex types
	mu            sync.RWMutex
	lastLatencyMs int64
	lastCallAt    time.Time
	lastFailure   string
	lastFailureAt time.Time

	// Breakdowns
	callsByOperation    map[string]int64
	failuresByKind      map[string]int64
	failuresByOperation map[string]int64
}

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		callsByOperation:    make(map[string]int64),
		failuresByKind:      make(map[string]int64),
		failuresByOperation: make(map[string]int64),
	}
}

// Snapshot is a point-in-time view of the metrics.
type Snapshot struct {
	CallsTotal          int64            `json:"calls_total"`
	FailuresTotal       int64            `json:"failures_total"`
	LastLatencyMs       int64            `json:"last_latency_ms"`
	LastCallAt          *time.Time       `json:"last_call_at,omitempty"`
	LastFailure         string           `json:"last_failure,omitempty"`
	LastFailureAt       *time.Time       `json:"last_failure_at,omitempty"`
	CallsByOperation    map[string]int64 `json:"calls_by_operation,omitempty"`
	FailuresByKind      map[string]int64 `json:"failures_by_kind,omitempty"`
	FailuresByOperation map[string]int64 `json:"failures_by_operation,omitempty"`
}

// ObserveCall records one completed backend call. A failure of "none" or ""
// counts as success.
func (m *Metrics) ObserveCall(op string, status int, failure string, d time.Duration) {
	m.callsTotal.Add(1)
	failed := failure != "" && failure != "none"
	if failed {
		m.failuresTotal.Add(1)
	}

	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLatencyMs = d.Milliseconds()
	m.lastCallAt = now
	m.callsByOperation[op]++

	if failed {
		m.lastFailure = op + ": " + failure
		m.lastFailureAt = now
		m.failuresByKind[failure]++
		m.failuresByOperation[op]++
	}
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		CallsTotal:          m.callsTotal.Load(),
		FailuresTotal:       m.failuresTotal.Load(),
		LastLatencyMs:       m.lastLatencyMs,
		LastFailure:         m.lastFailure,
		CallsByOperation:    copyCounts(m.callsByOperation),
		FailuresByKind:      copyCounts(m.failuresByKind),
		FailuresByOperation: copyCounts(m.failuresByOperation),
	}
	if !m.lastCallAt.IsZero() {
		t := m.lastCallAt
		snap.LastCallAt = &t
	}
	if !m.lastFailureAt.IsZero() {
		t := m.lastFailureAt
		snap.LastFailureAt = &t
	}
	return snap
}

func copyCounts(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
