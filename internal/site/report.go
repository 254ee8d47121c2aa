package site

import (
	"context"
	stderrors "errors"
	"time"

	"git.home.luguber.info/inful/htmlgen/internal/lang"
	"git.home.luguber.info/inful/htmlgen/internal/metrics"
)

// Report summarizes one build.
type Report struct {
	BuildID     string
	Outputs     []string // Written files, in build order
	PagesByLang map[lang.Lang]int
	Failures    []error // Per-page failures collected in keep-going mode
	Duration    time.Duration
}

func newReport(buildID string) *Report {
	return &Report{BuildID: buildID, PagesByLang: make(map[lang.Lang]int)}
}

// Pages returns the number of pages written.
func (r *Report) Pages() int { return len(r.Outputs) }

func (r *Report) outcome(err error) metrics.BuildOutcomeLabel {
	switch {
	case err == nil:
		return metrics.BuildOutcomeSuccess
	case stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded):
		return metrics.BuildOutcomeCanceled
	case len(r.Failures) > 0 && r.Pages() > 0:
		return metrics.BuildOutcomePartial
	default:
		return metrics.BuildOutcomeFailed
	}
}
