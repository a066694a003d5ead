// Package metrics provides storage observability for tabula using Prometheus
// metrics.
//
// # Overview
//
// Each Collector owns its own registry, so several stores (and tests) can run
// side by side without duplicate-registration panics. The CLI gathers the
// registry after a command when --metrics is set.
//
// # Basic Usage
//
//	collector := metrics.NewCollector()
//	timer := metrics.NewTimer("save")
//	files, err := store.Save(ctx, t, 1000, "movies", formats.Avro)
//	collector.ObserveDuration("save", timer.Stop())
//
// # Metrics
//
//	tabula_rows_loaded_total{format}           rows decoded from files
//	tabula_rows_saved_total{format}            rows encoded into files
//	tabula_files_total{op,format}              files read or written
//	tabula_storage_errors_total{op}            failed load/save calls
//	tabula_storage_duration_seconds{op}        load/save latency
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels
const (
	OpLoad = "load"
	OpSave = "save"
)

// Collector records storage metrics into a private registry.
type Collector struct {
	registry *prometheus.Registry

	rowsLoaded *prometheus.CounterVec   // Rows decoded, by format
	rowsSaved  *prometheus.CounterVec   // Rows encoded, by format
	files      *prometheus.CounterVec   // Files touched, by op and format
	errors     *prometheus.CounterVec   // Failed operations, by op
	duration   *prometheus.HistogramVec // Operation latency, by op
}

// NewCollector creates a collector with a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		rowsLoaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_rows_loaded_total",
				Help: "Total number of rows decoded from table files",
			},
			[]string{"format"},
		),
		rowsSaved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_rows_saved_total",
				Help: "Total number of rows encoded into table files",
			},
			[]string{"format"},
		),
		files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_files_total",
				Help: "Total number of table files read or written",
			},
			[]string{"op", "format"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_storage_errors_total",
				Help: "Total number of failed load and save operations",
			},
			[]string{"op"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "tabula_storage_duration_seconds",
				Help: "Duration of load and save operations in seconds",
				Buckets: []float64{
					0.0001, // 100μs - tiny in-memory files
					0.001,  // 1ms
					0.01,   // 10ms
					0.1,    // 100ms
					1,      // 1s - large compressed chunks
					10,
				},
			},
			[]string{"op"},
		),
	}
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RowsLoaded adds n decoded rows for format.
func (c *Collector) RowsLoaded(format string, n int) {
	c.rowsLoaded.WithLabelValues(format).Add(float64(n))
	c.files.WithLabelValues(OpLoad, format).Inc()
}

// RowsSaved adds n encoded rows for format.
func (c *Collector) RowsSaved(format string, n int) {
	c.rowsSaved.WithLabelValues(format).Add(float64(n))
	c.files.WithLabelValues(OpSave, format).Inc()
}

// Error counts a failed operation.
func (c *Collector) Error(op string) {
	c.errors.WithLabelValues(op).Inc()
}

// ObserveDuration records how long op took.
func (c *Collector) ObserveDuration(op string, d time.Duration) {
	c.duration.WithLabelValues(op).Observe(d.Seconds())
}

// RowsLoadedCounter exposes the counter for format, mainly for tests.
func (c *Collector) RowsLoadedCounter(format string) prometheus.Counter {
	return c.rowsLoaded.WithLabelValues(format)
}

// RowsSavedCounter exposes the counter for format, mainly for tests.
func (c *Collector) RowsSavedCounter(format string) prometheus.Counter {
	return c.rowsSaved.WithLabelValues(format)
}

// FilesCounter exposes the file counter for op and format.
func (c *Collector) FilesCounter(op, format string) prometheus.Counter {
	return c.files.WithLabelValues(op, format)
}

// ErrorsCounter exposes the error counter for op.
func (c *Collector) ErrorsCounter(op string) prometheus.Counter {
	return c.errors.WithLabelValues(op)
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the name the timer was created with.
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. It can be called more
// than once.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
