package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("discover", 15*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncPageResult("en", ResultSuccess)
	pr.IncPageResult("en", ResultSuccess)
	pr.IncPageResult("fr", ResultFailed)
	pr.IncBuildOutcome(BuildOutcomePartial)

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.pageResults.WithLabelValues("en", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.pageResults.WithLabelValues("fr", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("partial")))
	assert.Equal(t, 0.0, testutil.ToFloat64(pr.lastSuccess))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestPrometheusRecorderFlushTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "htmlgen.prom")
	pr := NewPrometheusRecorder(nil).WithTextfile(path)
	pr.IncPageResult("fr", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)

	require.NoError(t, pr.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `htmlgen_pages_total{lang="fr",result="success"} 1`), text)
	assert.Contains(t, text, "htmlgen_last_success_timestamp_seconds")
}

func TestFlushWithoutTextfileIsNoop(t *testing.T) {
	assert.NoError(t, NewPrometheusRecorder(nil).Flush())
	assert.NoError(t, NoopRecorder{}.Flush())
}
