package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/afromations/assetctl/internal/core/domain"
)

const namespace = "assetctl"

// RunMetrics describes a single organizer run on a private registry.
// Every textfile write replaces the previous one, so all series are gauges
// holding the values of the last run.
type RunMetrics struct {
	registry *prometheus.Registry

	filesOrganized prometheus.Gauge
	filesSkipped   *prometheus.GaugeVec
	bytesOrganized prometheus.Gauge
	recovered      prometheus.Gauge
	lastDuration   prometheus.Gauge
	lastSuccess    prometheus.Gauge
	manifestAssets prometheus.Gauge
}

// New registers the run metrics on a fresh registry
func New() *RunMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &RunMetrics{
		registry: reg,
		filesOrganized: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "files_organized_last_run",
			Help:      "Files moved into the category tree by the last run.",
		}),
		filesSkipped: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "files_skipped_last_run",
			Help:      "Files left in the input directory by the last run, by reason.",
		}, []string{"reason"}),
		bytesOrganized: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bytes_organized_last_run",
			Help:      "Bytes moved into the category tree by the last run.",
		}),
		recovered: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "journal_recovered_last_run",
			Help:      "Moves recovered from the write-ahead journal by the last run.",
		}),
		lastDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		manifestAssets: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "manifest_assets",
			Help:      "Assets recorded in the manifest after the last run.",
		}),
	}
}

// Run is the subset of a run outcome the collector needs
type Run struct {
	Results        []domain.FileResult
	Recovered      int
	BytesOrganized int64
	TotalAssets    int
	Duration       time.Duration
	FinishedAt     time.Time
}

// Observe records a finished run. Dry-runs are ignored.
func (m *RunMetrics) Observe(run Run) {
	organized := 0
	skipped := make(map[domain.SkipReason]int)
	for _, r := range run.Results {
		if r.DryRun {
			return
		}
		if r.Organized() {
			organized++
			continue
		}
		skipped[r.Reason]++
	}

	m.filesOrganized.Set(float64(organized))
	m.filesSkipped.Reset()
	for reason, n := range skipped {
		m.filesSkipped.WithLabelValues(string(reason)).Set(float64(n))
	}

	m.bytesOrganized.Set(float64(run.BytesOrganized))
	m.recovered.Set(float64(run.Recovered))
	m.lastDuration.Set(run.Duration.Seconds())
	m.lastSuccess.Set(float64(run.FinishedAt.Unix()))
	m.manifestAssets.Set(float64(run.TotalAssets))
}

// Registry exposes the underlying registry
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in text exposition format, atomically
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
