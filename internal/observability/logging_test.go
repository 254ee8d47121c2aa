package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextValues(t *testing.T) {
	ctx := WithBuildID(context.Background(), "b-42")
	ctx = WithStage(ctx, "render")

	lc := GetContext(ctx)
	if lc.BuildID != "b-42" || lc.Stage != "render" {
		t.Fatalf("unexpected log context %+v", lc)
	}

	if got := GetContext(context.Background()); got != (LogContext{}) {
		t.Fatalf("expected empty context, got %+v", got)
	}
}

func TestInfoContextAddsAttributes(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithStage(WithBuildID(context.Background(), "b-42"), "discover")

	InfoContext(ctx, "Content discovered", slog.Int("count", 3))

	out := buf.String()
	for _, want := range []string{"build_id=b-42", "stage=discover", "count=3", "Content discovered"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestLevels(t *testing.T) {
	buf := captureDefault(t)
	ctx := context.Background()

	DebugContext(ctx, "d")
	WarnContext(ctx, "w")
	ErrorContext(ctx, "e")

	out := buf.String()
	for _, want := range []string{"level=DEBUG", "level=WARN", "level=ERROR"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
