// Package metrics records seeding outcomes as Prometheus metrics.
//
// The seeder is a batch job, so metrics live in a private registry and are
// exported to a node_exporter textfile after each run instead of being served.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brewsandbytes/seeder/internal/core"
)

const subsystem = "seed"

// Recorder implements core.Observer.
type Recorder struct {
	registry *prometheus.Registry

	inserted    *prometheus.CounterVec
	skipped     *prometheus.CounterVec
	duplicates  *prometheus.CounterVec
	missing     *prometheus.CounterVec
	runs        *prometheus.CounterVec
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder creates a Recorder whose metric names start with namespace.
func NewRecorder(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		inserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rows_inserted_total",
			Help:      "Rows inserted, by table.",
		}, []string{"table"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rows_skipped_total",
			Help:      "Rows skipped for missing fields, bad ids or unknown professions, by table.",
		}, []string{"table"}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rows_duplicate_total",
			Help:      "Rows ignored because their key already existed, by table.",
		}, []string{"table"}),
		missing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "files_missing_total",
			Help:      "Seed files that were not found, by table.",
		}, []string{"table"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Seeding runs, by status.",
		}, []string{"status"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the most recent run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished.",
		}),
	}

	r.registry.MustRegister(
		r.inserted,
		r.skipped,
		r.duplicates,
		r.missing,
		r.runs,
		r.duration,
		r.lastSuccess,
	)
	return r
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveFile implements core.Observer.
func (r *Recorder) ObserveFile(f core.FileResult) {
	if !f.Found {
		r.missing.WithLabelValues(f.Table).Inc()
		return
	}
	r.inserted.WithLabelValues(f.Table).Add(float64(f.Inserted))
	r.skipped.WithLabelValues(f.Table).Add(float64(f.Skipped))
	r.duplicates.WithLabelValues(f.Table).Add(float64(f.Duplicates))
}

// ObserveRun implements core.Observer.
func (r *Recorder) ObserveRun(report *core.Report) {
	r.duration.Set(report.Duration.Seconds())
	if !report.Succeeded() {
		r.runs.WithLabelValues("failure").Inc()
		return
	}
	r.runs.WithLabelValues("success").Inc()
	r.lastSuccess.Set(float64(report.FinishedAt.Unix()))
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically so a collector never reads a partial file.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
