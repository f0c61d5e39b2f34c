// Package metrics provides Prometheus-based metrics collection for scansheet.
// A report run is a short batch job, so metrics live on a private registry
// and are written out once in the text exposition format when the run ends.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anstrom/scansheet/internal/scanning"
)

const (
	// Namespace for all scansheet metrics
	namespace = "scansheet"

	// Subsystems
	subsystemInput  = "input"
	subsystemReport = "report"
)

// PrometheusMetrics holds all Prometheus metric collectors
type PrometheusMetrics struct {
	filesParsed  *prometheus.CounterVec
	hostsSeen    *prometheus.CounterVec
	hostsSkipped *prometheus.CounterVec
	rowsWritten  *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	lastRun      prometheus.Gauge

	registry *prometheus.Registry
}

// NewPrometheusMetrics creates a new Prometheus metrics instance with all collectors
func NewPrometheusMetrics() *PrometheusMetrics {
	pm := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
	}

	pm.initInputMetrics()
	pm.initReportMetrics()

	pm.registry.MustRegister(
		pm.filesParsed,
		pm.hostsSeen,
		pm.hostsSkipped,
		pm.rowsWritten,
		pm.runDuration,
		pm.lastRun,
	)

	return pm
}

// initInputMetrics initializes scan-file related metrics
func (pm *PrometheusMetrics) initInputMetrics() {
	pm.filesParsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemInput,
			Name:      "files_total",
			Help:      "Scan files processed by outcome",
		},
		[]string{"status"},
	)

	pm.hostsSeen = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemInput,
			Name:      "hosts_total",
			Help:      "Hosts found in scan files by state",
		},
		[]string{"state"},
	)
}

// initReportMetrics initializes worksheet related metrics
func (pm *PrometheusMetrics) initReportMetrics() {
	pm.hostsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemReport,
			Name:      "hosts_skipped_total",
			Help:      "Hosts left out of the OS worksheets by reason",
		},
		[]string{"reason"},
	)

	pm.rowsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemReport,
			Name:      "rows_total",
			Help:      "Data rows written per worksheet",
		},
		[]string{"sheet"},
	)

	pm.runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemReport,
			Name:      "duration_seconds",
			Help:      "Duration of report runs in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"status"},
	)

	pm.lastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemReport,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last report run finished",
		},
	)
}

// FileParsed counts an input file by outcome.
func (pm *PrometheusMetrics) FileParsed(status string) {
	pm.filesParsed.WithLabelValues(status).Inc()
}

// HostsSeen adds the host counts of one parsed file.
func (pm *PrometheusMetrics) HostsSeen(stats scanning.HostStats) {
	pm.hostsSeen.WithLabelValues(scanning.StateUp).Add(float64(stats.Up))
	pm.hostsSeen.WithLabelValues(scanning.StateDown).Add(float64(stats.Down))
}

// HostSkipped counts a host left out of the OS worksheets.
func (pm *PrometheusMetrics) HostSkipped(reason string) {
	pm.hostsSkipped.WithLabelValues(reason).Inc()
}

// RowsWritten records the rows written to a worksheet.
func (pm *PrometheusMetrics) RowsWritten(sheet string, rows int) {
	pm.rowsWritten.WithLabelValues(sheet).Add(float64(rows))
}

// RunCompleted records the run duration and completion time.
func (pm *PrometheusMetrics) RunCompleted(status string, duration time.Duration) {
	pm.runDuration.WithLabelValues(status).Observe(duration.Seconds())
	pm.lastRun.SetToCurrentTime()
}

// WriteTextfile writes every metric to path in the text exposition format,
// suitable for the node_exporter textfile collector.
func (pm *PrometheusMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, pm.registry)
}
