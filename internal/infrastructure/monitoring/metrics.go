package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics for one engine
type Metrics struct {
	// Operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Scan metrics
	FilesScanned    prometheus.Counter
	DuplicatesFound prometheus.Counter

	// Crypto metrics
	BytesTransformed *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	registry *prometheus.Registry

	// Snapshot for the dashboard - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for display
type Snapshot struct {
	TotalOperations int64
	Denied          int64
	Failed          int64
	TotalDuration   time.Duration
	Uptime          time.Duration
}

// AvgDuration is the mean operation latency
func (s Snapshot) AvgDuration() time.Duration {
	if s.TotalOperations == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalOperations)
}

// NewMetrics creates a metrics collector on its own registry, so several
// engines in one process never collide.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		registry:  reg,

		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileengine_operations_total",
				Help: "Total number of engine operations",
			},
			[]string{"kind", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fileengine_operation_duration_seconds",
				Help:    "Engine operation duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"kind"},
		),

		FilesScanned: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileengine_scan_files_total",
				Help: "Files visited by tree scans",
			},
		),
		DuplicatesFound: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileengine_duplicates_found_total",
				Help: "Duplicate files reported by scans",
			},
		),

		BytesTransformed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileengine_crypto_bytes_total",
				Help: "Bytes encrypted or decrypted in place",
			},
			[]string{"direction"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "fileengine_uptime_seconds",
			Help: "Engine uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the private registry for gathering or exposition
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation records one finished operation
func (m *Metrics) RecordOperation(kind, outcome string, duration time.Duration) {
	m.OperationsTotal.WithLabelValues(kind, outcome).Inc()
	m.OperationDuration.WithLabelValues(kind).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalOperations++
	m.snapshot.TotalDuration += duration
	switch outcome {
	case OutcomeDenied:
		m.snapshot.Denied++
	case OutcomeError:
		m.snapshot.Failed++
	}
	m.mu.Unlock()
}

// RecordScan records the size and result of a duplicate or recency scan
func (m *Metrics) RecordScan(files, duplicates int) {
	m.FilesScanned.Add(float64(files))
	m.DuplicatesFound.Add(float64(duplicates))
}

// RecordCrypto records bytes passed through encrypt or decrypt
func (m *Metrics) RecordCrypto(direction string, n int64) {
	m.BytesTransformed.WithLabelValues(direction).Add(float64(n))
}

// Snapshot returns current values
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.Uptime = time.Since(m.startTime)
	return s
}
