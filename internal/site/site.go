package site

import (
	"time"

	"git.home.luguber.info/inful/htmlgen/internal/config"
	"git.home.luguber.info/inful/htmlgen/internal/content"
	"git.home.luguber.info/inful/htmlgen/internal/metrics"
	"git.home.luguber.info/inful/htmlgen/internal/output"
)

const defaultDebounce = 300 * time.Millisecond

// Site builds one configured site.
type Site struct {
	cfg       *config.Config
	writer    *output.Writer
	recorder  metrics.Recorder
	lastmod   content.LastModifiedResolver
	location  *time.Location
	keepGoing bool
	debounce  time.Duration
}

// Option customizes a Site.
type Option func(*Site)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Site) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithKeepGoing makes a build continue past failing pages. The failures are
// still returned, joined, once every other page is written.
func WithKeepGoing(keepGoing bool) Option {
	return func(s *Site) { s.keepGoing = keepGoing }
}

// WithLastModifiedResolver overrides the configured last-modified source.
func WithLastModifiedResolver(r content.LastModifiedResolver) Option {
	return func(s *Site) { s.lastmod = r }
}

// WithDebounce sets how long Watch waits for changes to settle.
func WithDebounce(d time.Duration) Option {
	return func(s *Site) { s.debounce = d }
}

// New creates a site from a validated configuration.
func New(cfg *config.Config, opts ...Option) (*Site, error) {
	loc, err := cfg.Timestamps.Location()
	if err != nil {
		return nil, err
	}

	s := &Site{
		cfg:      cfg,
		writer:   output.NewWriter(cfg.Paths.Output),
		recorder: metrics.NoopRecorder{},
		location: loc,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.lastmod == nil {
		s.lastmod = resolverFor(cfg.Timestamps.Source)
	}
	return s, nil
}

func resolverFor(source config.TimestampSource) content.LastModifiedResolver {
	if source == config.TimestampSourceGit {
		return content.NewGitResolver()
	}
	return content.MtimeResolver{}
}
