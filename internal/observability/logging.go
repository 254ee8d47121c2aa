// Package observability carries per-build logging context.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/htmlgen/internal/logfields"
)

// LogContext is the build metadata attached to every log line.
type LogContext struct {
	BuildID string
	Stage   string
}

type logContextKey struct{}

// WithBuildID returns ctx tagged with a build ID.
func WithBuildID(ctx context.Context, buildID string) context.Context {
	lc := GetContext(ctx)
	lc.BuildID = buildID
	return context.WithValue(ctx, logContextKey{}, lc)
}

// WithStage returns ctx tagged with the current build stage.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := GetContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey{}, lc)
}

// GetContext returns the log context stored in ctx, or the zero value.
func GetContext(ctx context.Context) LogContext {
	lc, _ := ctx.Value(logContextKey{}).(LogContext)
	return lc
}

func (lc LogContext) attrs() []slog.Attr {
	var attrs []slog.Attr
	if lc.BuildID != "" {
		attrs = append(attrs, logfields.BuildID(lc.BuildID))
	}
	if lc.Stage != "" {
		attrs = append(attrs, logfields.Stage(lc.Stage))
	}
	return attrs
}

func log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	slog.LogAttrs(ctx, level, msg, append(GetContext(ctx).attrs(), attrs...)...)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelInfo, msg, attrs)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelWarn, msg, attrs)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelError, msg, attrs)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelDebug, msg, attrs)
}
