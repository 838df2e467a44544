package goCred

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricVerifySuccess)

	if got := m.Value(MetricVerifySuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricVerifySuccess)
	m.Inc(MetricVerifySuccess)
	m.Inc(MetricVerifySuccess)

	if got := m.Value(MetricVerifySuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricRegisterSuccess)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricRegisterSuccess); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		25 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		1000 * time.Millisecond,
		2500 * time.Millisecond,
		4 * time.Second,
	}

	for _, d := range observations {
		m.Observe(MetricHashLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricHashLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricVerifySuccess)
	m.Inc(MetricVerifyFailure)
	m.Inc(MetricVerifyFailure)
	m.Observe(MetricHashLatency, 2*time.Millisecond)

	snap := m.Snapshot()

	if snap.Counters[MetricVerifySuccess] != 1 {
		t.Fatalf("expected MetricVerifySuccess=1 got %d", snap.Counters[MetricVerifySuccess])
	}
	if snap.Counters[MetricVerifyFailure] != 2 {
		t.Fatalf("expected MetricVerifyFailure=2 got %d", snap.Counters[MetricVerifyFailure])
	}
	if len(snap.Histograms[MetricHashLatency]) != 8 {
		t.Fatalf("expected histogram length 8")
	}
	if snap.Histograms[MetricHashLatency][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricHashLatency][0])
	}
}

func TestMetricsObserveIgnoresNonHistogramIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	m.Observe(MetricVerifySuccess, 10*time.Millisecond)

	snap := m.Snapshot()
	if _, ok := snap.Histograms[MetricVerifySuccess]; ok {
		t.Fatal("expected no histogram entry for counter-only metric")
	}
}
