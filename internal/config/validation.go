package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve without system zoneinfo

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

// ValidateConfig checks a configuration after defaults were applied.
func ValidateConfig(cfg *Config) error {
	if err := validatePaths(cfg.Paths); err != nil {
		return err
	}
	if err := validateContent(cfg.Content); err != nil {
		return err
	}
	if err := validateRender(cfg.Render); err != nil {
		return err
	}
	return validateTimestamps(cfg.Timestamps)
}

func validatePaths(p PathsConfig) error {
	fields := []struct{ name, value string }{
		{"paths.template", p.Template},
		{"paths.translations", p.Translations},
		{"paths.alternate_links", p.AlternateLinks},
		{"paths.content", p.Content},
		{"paths.output", p.Output},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errors.ConfigError(f.name + " cannot be empty").Build()
		}
	}
	if p.Content == p.Output {
		return errors.ConfigError("paths.output must differ from paths.content").
			WithContext("path", p.Output).
			Build()
	}
	return nil
}

func validateContent(c ContentConfig) error {
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.ConfigError(fmt.Sprintf("content extension %q must start with a dot", ext)).Build()
		}
	}
	return nil
}

func validateRender(r RenderConfig) error {
	indents := []struct {
		name  string
		value int
	}{
		{"render.content_indent", r.ContentIndent},
		{"render.extra_head_indent", r.ExtraHeadIndent},
		{"render.extra_scripts_indent", r.ExtraScriptsIndent},
	}
	for _, in := range indents {
		if in.value < 0 {
			return errors.ConfigError(in.name + " cannot be negative").Build()
		}
	}
	return nil
}

func validateTimestamps(t TimestampsConfig) error {
	if _, err := timestampSources.Parse(string(t.Source)); err != nil {
		return err
	}
	_, err := t.Location()
	return err
}

// Location resolves the configured timezone; empty means local time.
func (t TimestampsConfig) Location() (*time.Location, error) {
	if t.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid timestamps.timezone").
			Fatal().
			WithContext("timezone", t.Timezone).
			Build()
	}
	return loc, nil
}
