// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for pool-level monitoring.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-pool/api"
)

// StatsSource is anything able to report pool accounting; both the
// bounded pool and the lock-free cache satisfy it.
type StatsSource interface {
	Stats() api.PoolStats
}

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Publish takes a stats snapshot from src and stores it under prefixed
// keys, one per field, so flat metric consumers can read them.
func (mr *MetricsRegistry) Publish(name string, src StatsSource) {
	st := src.Stats()
	mr.mu.Lock()
	mr.metrics[name+".capacity"] = st.Capacity
	mr.metrics[name+".available"] = st.Available
	mr.metrics[name+".outstanding"] = st.Outstanding
	mr.metrics[name+".waiting"] = st.Waiting
	mr.metrics[name+".total_created"] = st.TotalCreated
	mr.metrics[name+".total_reused"] = st.TotalReused
	mr.metrics[name+".total_discarded"] = st.TotalDiscarded
	mr.metrics[name+".total_timeouts"] = st.TotalTimeouts
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}
