package goSession

import "sync/atomic"

// MetricID identifies one in-process counter.
//
//	Docs: docs/metrics.md
type MetricID uint16

const (
	// MetricLoginSuccess counts verified login attempts.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected login attempts (unknown user and
	// wrong secret are one bucket, matching the error taxonomy).
	MetricLoginFailure
	// MetricSessionCreated counts sessions minted by resolution.
	MetricSessionCreated
	// MetricSessionDestroyed counts explicit logouts.
	MetricSessionDestroyed
	// MetricSessionExpired counts idle-timeout evictions (memory backend).
	MetricSessionExpired
	// MetricRehydrateStale counts identity references that no longer resolve.
	MetricRehydrateStale
	// MetricUnauthorized counts authorization-gate rejections.
	MetricUnauthorized
	// MetricProviderError counts identity-store backend failures.
	MetricProviderError
	// MetricStoreError counts session-store backend failures.
	MetricStoreError

	metricIDCount
)

// Metrics holds atomic counters. All operations are safe for concurrent use;
// a disabled Metrics is a no-op.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics creates a [Metrics] instance. When cfg.Enabled is false, Inc is
// a no-op and Snapshot returns empty maps.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot deep-copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: map[MetricID]uint64{}}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
