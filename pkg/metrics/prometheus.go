// Package metrics provides Prometheus metrics for the conversion pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus metrics for the converter.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	// Event source metrics
	fetchPages         prometheus.Counter
	rawEvents          prometheus.Counter
	duplicateEvents    prometheus.Counter
	wclRequestDuration prometheus.Histogram

	// Pipeline metrics
	normalizedInstances prometheus.Counter
	unknownEnemies      prometheus.Counter
	pullsBuilt          prometheus.Counter
	emptyRuns           prometheus.Counter

	// Export metrics
	exportsGenerated prometheus.Counter
	exportBytes      prometheus.Gauge
	encodeDuration   prometheus.Histogram
}

// Global metrics manager on a custom registry, so the binary does not drag
// the default Go collectors along.
var globalManager *Manager                    //nolint:gochecknoglobals // singleton metrics manager
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry backing the singleton

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "wcl2mdt",
		subsystem: "pipeline",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchPages = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_pages_total",
		Help:      "Total number of event pages fetched from the report service",
	})
	m.rawEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "raw_events_total",
		Help:      "Total number of raw combat events received",
	})
	m.duplicateEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_events_total",
		Help:      "Total number of page-boundary duplicate events dropped",
	})
	m.wclRequestDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "wcl_request_duration_seconds",
		Help:      "Histogram of report service request durations",
		Buckets:   prometheus.DefBuckets,
	})

	m.normalizedInstances = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "normalized_instances_total",
		Help:      "Total number of enemy instances produced by normalization",
	})
	m.unknownEnemies = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unknown_enemies_total",
		Help:      "Total number of enemy instances skipped for missing catalog entries",
	})
	m.pullsBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pulls_built_total",
		Help:      "Total number of pulls produced by segmentation",
	})
	m.emptyRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_runs_total",
		Help:      "Total number of runs that normalized to zero instances",
	})

	m.exportsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_generated_total",
		Help:      "Total number of export strings generated",
	})
	m.exportBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_bytes",
		Help:      "Length in bytes of the most recent export string",
	})
	m.encodeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "encode_duration_seconds",
		Help:      "Histogram of export encoding durations",
		Buckets:   prometheus.DefBuckets,
	})
}

// Registry returns the gatherer backing the global manager, for promhttp.
func Registry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers on the global manager.

// RecordFetchPage counts one fetched event page with n raw events.
func RecordFetchPage(n int) {
	globalManager.fetchPages.Inc()
	globalManager.rawEvents.Add(float64(n))
}

// RecordDuplicateEvent counts one dropped page-boundary duplicate.
func RecordDuplicateEvent() {
	globalManager.duplicateEvents.Inc()
}

// ObserveRequestDuration records one report service request duration.
func ObserveRequestDuration(d time.Duration) {
	globalManager.wclRequestDuration.Observe(d.Seconds())
}

// RecordNormalized counts normalized instances and skipped unknowns.
func RecordNormalized(instances, unknown int) {
	globalManager.normalizedInstances.Add(float64(instances))
	globalManager.unknownEnemies.Add(float64(unknown))
}

// RecordPulls counts pulls produced by one segmentation.
func RecordPulls(n int) {
	globalManager.pullsBuilt.Add(float64(n))
}

// RecordEmptyRun counts a run that normalized to zero instances.
func RecordEmptyRun() {
	globalManager.emptyRuns.Inc()
}

// RecordExport records one generated export string.
func RecordExport(bytes int, d time.Duration) {
	globalManager.exportsGenerated.Inc()
	globalManager.exportBytes.Set(float64(bytes))
	globalManager.encodeDuration.Observe(d.Seconds())
}
