package goSession

import (
	"sync"
	"testing"
)

func TestMetricsIncAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricStoreError)

	snap := m.Snapshot()
	if snap.Counters[MetricLoginSuccess] != 2 {
		t.Fatalf("login success: got %d, want 2", snap.Counters[MetricLoginSuccess])
	}
	if snap.Counters[MetricStoreError] != 1 {
		t.Fatalf("store error: got %d, want 1", snap.Counters[MetricStoreError])
	}
	if snap.Counters[MetricUnauthorized] != 0 {
		t.Fatalf("untouched counter must be zero, got %d", snap.Counters[MetricUnauthorized])
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)

	snap := m.Snapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("disabled metrics must snapshot empty, got %v", snap.Counters)
	}
}

func TestMetricsIgnoresUnknownID(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	// Out-of-range IDs are a programming error but must not panic.
	m.Inc(metricIDCount)
	m.Inc(MetricID(1000))
}

func TestMetricsSnapshotIsACopy(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLoginSuccess)

	snap := m.Snapshot()
	snap.Counters[MetricLoginSuccess] = 99

	if m.Snapshot().Counters[MetricLoginSuccess] != 1 {
		t.Fatal("mutating a snapshot leaked into the live counters")
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Inc(MetricSessionCreated)
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot().Counters[MetricSessionCreated]; got != 16000 {
		t.Fatalf("lost increments: got %d, want 16000", got)
	}
}
