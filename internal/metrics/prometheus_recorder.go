package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	textfile      string
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	pageResults   *prom.CounterVec
	buildOutcome  *prom.CounterVec
	lastSuccess   prom.Gauge
}

// NewPrometheusRecorder constructs and registers the build metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "htmlgen",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "htmlgen",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.pageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "htmlgen",
		Name:      "pages_total",
		Help:      "Pages processed by language and result",
	}, []string{"lang", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "htmlgen",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.lastSuccess = prom.NewGauge(prom.GaugeOpts{
		Namespace: "htmlgen",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last fully successful build",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.pageResults, pr.buildOutcome, pr.lastSuccess)
	return pr
}

// WithTextfile makes Flush write the registry to path.
func (p *PrometheusRecorder) WithTextfile(path string) *PrometheusRecorder {
	p.textfile = path
	return p
}

// Registry returns the registry the metrics live in.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(lang string, result ResultLabel) {
	if p == nil || p.pageResults == nil {
		return
	}
	p.pageResults.WithLabelValues(lang, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
	if outcome == BuildOutcomeSuccess {
		p.lastSuccess.SetToCurrentTime()
	}
}

// Flush writes the registry to the configured textfile, if any. The write is
// atomic, so the collector never reads a partial file.
func (p *PrometheusRecorder) Flush() error {
	if p == nil || p.textfile == "" {
		return nil
	}
	if err := prom.WriteToTextfile(p.textfile, p.registry); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
			WithContext("path", p.textfile).
			Build()
	}
	return nil
}
