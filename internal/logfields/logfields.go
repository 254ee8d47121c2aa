package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyLang       = "lang"
	KeyOutput     = "output"
	KeyCount      = "count"
	KeyKey        = "key"
	KeyOp         = "op"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Lang(code string) slog.Attr       { return slog.String(KeyLang, code) }
func Output(p string) slog.Attr        { return slog.String(KeyOutput, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Key(k string) slog.Attr           { return slog.String(KeyKey, k) }
func Op(op string) slog.Attr           { return slog.String(KeyOp, op) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
