package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afromations/assetctl/internal/core/domain"
)

func sampleRun() Run {
	return Run{
		Results: []domain.FileResult{
			{Name: "clip.mp4", Path: "video/clip.mp4"},
			{Name: "clip_copy.mp4", Skipped: true, Reason: domain.SkipDuplicate},
			{Name: "logo.png", Path: "brand/logo.png"},
			{Name: ".DS_Store", Skipped: true, Reason: domain.SkipSystemFile},
		},
		BytesOrganized: 2048,
		TotalAssets:    2,
		Duration:       1500 * time.Millisecond,
		FinishedAt:     time.Unix(1714564800, 0),
	}
}

func TestRunMetrics_Observe(t *testing.T) {
	m := New()
	m.Observe(sampleRun())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.filesOrganized))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesSkipped.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesSkipped.WithLabelValues("system_file")))
	assert.Equal(t, 2048.0, testutil.ToFloat64(m.bytesOrganized))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.lastDuration))
}

func TestRunMetrics_ObserveReplacesPreviousRun(t *testing.T) {
	m := New()
	m.Observe(sampleRun())
	m.Observe(Run{Results: []domain.FileResult{{Name: "a.png", Path: "images/a.png"}}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesOrganized))
	assert.Zero(t, testutil.CollectAndCount(m.filesSkipped))
}

func TestRunMetrics_IgnoresDryRun(t *testing.T) {
	m := New()
	m.Observe(Run{Results: []domain.FileResult{{Name: "a.png", Path: "images/a.png", DryRun: true}}})

	assert.Zero(t, testutil.ToFloat64(m.filesOrganized))
}

func TestRunMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.Observe(sampleRun())

	path := filepath.Join(t.TempDir(), "textfile", "assetctl.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.Contains(text, "assetctl_files_organized_last_run 2"))
	assert.True(t, strings.Contains(text, `assetctl_files_skipped_last_run{reason="duplicate"} 1`))
	assert.True(t, strings.Contains(text, "assetctl_last_run_duration_seconds 1.5"))
	assert.True(t, strings.Contains(text, "# TYPE assetctl_files_organized_last_run gauge"))
	assert.False(t, strings.Contains(text, "_total"), "per-run values are not counters")
}
