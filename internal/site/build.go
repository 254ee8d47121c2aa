package site

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/htmlgen/internal/content"
	"git.home.luguber.info/inful/htmlgen/internal/logfields"
	"git.home.luguber.info/inful/htmlgen/internal/metrics"
	"git.home.luguber.info/inful/htmlgen/internal/observability"
	"git.home.luguber.info/inful/htmlgen/internal/render"
	"git.home.luguber.info/inful/htmlgen/internal/tables"
)

// Stage names used in logs and metrics.
const (
	StageLoad     = "load"
	StageDiscover = "discover"
	StageRender   = "render"
)

// Build runs one full build. Missing or malformed inputs abort before any
// page is written; a failing page aborts the rest unless keep-going is set.
func (s *Site) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := newReport(uuid.NewString())
	ctx = observability.WithBuildID(ctx, report.BuildID)

	observability.InfoContext(ctx, "Starting build",
		logfields.Path(s.cfg.Paths.Content),
		logfields.Output(s.writer.Root()))

	err := s.build(ctx, report)

	report.Duration = time.Since(start)
	s.recorder.ObserveBuildDuration(report.Duration)
	s.recorder.IncBuildOutcome(report.outcome(err))
	if flushErr := s.recorder.Flush(); flushErr != nil {
		observability.WarnContext(ctx, "Failed to write metrics", logfields.Error(flushErr))
	}

	if err != nil {
		return report, err
	}
	observability.InfoContext(ctx, "Build completed",
		logfields.Count(report.Pages()),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return report, nil
}

func (s *Site) build(ctx context.Context, report *Report) error {
	var builder *render.Builder
	err := s.stage(ctx, StageLoad, func(ctx context.Context) error {
		var err error
		builder, err = s.load(ctx)
		return err
	})
	if err != nil {
		return err
	}

	var units []content.Unit
	err = s.stage(ctx, StageDiscover, func(context.Context) error {
		var err error
		units, err = content.NewDiscovery(s.cfg.Paths.Content, s.cfg.Content.Extensions).Discover()
		return err
	})
	if err != nil {
		return err
	}
	if len(units) == 0 {
		observability.WarnContext(ctx, "No content found", logfields.Path(s.cfg.Paths.Content))
	}

	return s.stage(ctx, StageRender, func(ctx context.Context) error {
		return s.renderAll(ctx, builder, units, report)
	})
}

func (s *Site) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, name)
	start := time.Now()
	err := fn(ctx)
	s.recorder.ObserveStageDuration(name, time.Since(start))
	return err
}

// load reads the inputs shared by every page.
func (s *Site) load(ctx context.Context) (*render.Builder, error) {
	paths := s.cfg.Paths

	tmpl, err := render.LoadTemplate(paths.Template)
	if err != nil {
		return nil, err
	}
	translations, err := tables.LoadTranslations(paths.Translations)
	if err != nil {
		return nil, err
	}
	links, err := tables.LoadAlternateLinks(paths.AlternateLinks)
	if err != nil {
		return nil, err
	}
	observability.DebugContext(ctx, "Inputs loaded",
		logfields.Path(paths.Template),
		slog.Any("placeholders", tmpl.Placeholders()))

	opts := render.Options{
		ContentIndent:      s.cfg.Render.ContentIndent,
		ExtraHeadIndent:    s.cfg.Render.ExtraHeadIndent,
		ExtraScriptsIndent: s.cfg.Render.ExtraScriptsIndent,
		AllowUnresolved:    s.cfg.Render.AllowUnresolved,
		Location:           s.location,
	}
	reader := content.NewReader(paths.ExtraHead, paths.ExtraScripts)
	return render.NewBuilder(tmpl, translations, links, reader, s.lastmod, opts), nil
}

func (s *Site) renderAll(ctx context.Context, builder *render.Builder, units []content.Unit, report *Report) error {
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return err
		}

		path, err := s.renderOne(ctx, builder, u)
		if err != nil {
			s.recorder.IncPageResult(u.Lang.String(), metrics.ResultFailed)
			err = fmt.Errorf("%s: %w", u.RelPath, err)
			if !s.keepGoing {
				return err
			}
			observability.ErrorContext(ctx, "Page failed", logfields.File(u.RelPath), logfields.Error(err))
			report.Failures = append(report.Failures, err)
			continue
		}

		s.recorder.IncPageResult(u.Lang.String(), metrics.ResultSuccess)
		report.Outputs = append(report.Outputs, path)
		report.PagesByLang[u.Lang]++
		observability.InfoContext(ctx, "Page generated", logfields.Output(path), logfields.Lang(u.Lang.String()))
	}

	if len(report.Failures) > 0 {
		return stderrors.Join(report.Failures...)
	}
	return nil
}

func (s *Site) renderOne(ctx context.Context, builder *render.Builder, u content.Unit) (string, error) {
	page, err := builder.Build(ctx, u)
	if err != nil {
		return "", err
	}
	return s.writer.Write(page.RelPath, page.HTML)
}
