package config

import "slices"

// Built-in layout: the generator runs from its own directory with the site
// sources as siblings.
const (
	defaultTemplatePath       = "../html-templates/base.html"
	defaultContentDir         = "../html-content"
	defaultExtraHeadDir       = "../html-extra-head"
	defaultExtraScriptsDir    = "../html-extra-scripts"
	defaultOutputDir          = "../_site"
	defaultTranslationsPath   = "translations.yml"
	defaultAlternateLinksPath = "alternate-links.yml"

	defaultContentIndent      = 6
	defaultExtraHeadIndent    = 6
	defaultExtraScriptsIndent = 4
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	p := &cfg.Paths
	setDefault(&p.Template, defaultTemplatePath)
	setDefault(&p.Translations, defaultTranslationsPath)
	setDefault(&p.AlternateLinks, defaultAlternateLinksPath)
	setDefault(&p.Content, defaultContentDir)
	setDefault(&p.ExtraHead, defaultExtraHeadDir)
	setDefault(&p.ExtraScripts, defaultExtraScriptsDir)
	setDefault(&p.Output, defaultOutputDir)

	if len(cfg.Content.Extensions) == 0 {
		cfg.Content.Extensions = []string{".html"}
	}
	if cfg.Content.Markdown && !slices.Contains(cfg.Content.Extensions, ".md") {
		cfg.Content.Extensions = append(cfg.Content.Extensions, ".md")
	}

	// Zero means unset; the generated source is always padded.
	if cfg.Render.ContentIndent == 0 {
		cfg.Render.ContentIndent = defaultContentIndent
	}
	if cfg.Render.ExtraHeadIndent == 0 {
		cfg.Render.ExtraHeadIndent = defaultExtraHeadIndent
	}
	if cfg.Render.ExtraScriptsIndent == 0 {
		cfg.Render.ExtraScriptsIndent = defaultExtraScriptsIndent
	}

	if cfg.Timestamps.Source == "" {
		cfg.Timestamps.Source = TimestampSourceMtime
	} else if src, ok := timestampSources.Lookup(string(cfg.Timestamps.Source)); ok {
		cfg.Timestamps.Source = src
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
