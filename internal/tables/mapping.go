package tables

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/lang"
	"git.home.luguber.info/inful/htmlgen/internal/logfields"
)

type mapping map[lang.Lang]map[string]string

type unmarshalFunc func([]byte, any) error

func unmarshalerFor(path string) (unmarshalFunc, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Unmarshal, true
	case ".toml":
		return toml.Unmarshal, true
	default:
		return nil, false
	}
}

// loadMapping reads a language -> key -> value file. Languages outside the
// supported set are skipped with a warning.
func loadMapping(path, kind string) (mapping, error) {
	unmarshal, ok := unmarshalerFor(path)
	if !ok {
		return nil, errors.ConfigError("unsupported " + kind + " file format").
			WithContext("path", path).
			Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read "+kind+" file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	raw := map[string]map[string]string{}
	if err := unmarshal(data, &raw); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "malformed "+kind+" file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	out := make(mapping, len(raw))
	for code, entries := range raw {
		l, err := lang.Parse(code)
		if err != nil {
			slog.Warn("Skipping unsupported language in "+kind+" file", logfields.Path(path), logfields.Lang(code))
			continue
		}
		if entries == nil {
			entries = map[string]string{}
		}
		out[l] = entries
	}
	slog.Debug("Loaded "+kind, logfields.Path(path), logfields.Count(len(out)))
	return out, nil
}
