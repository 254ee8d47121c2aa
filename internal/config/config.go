package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/foundation/normalization"
)

// DefaultPath is the configuration file looked up when none is given.
// Its absence is not an error: the built-in defaults describe the
// conventional layout next to the generator.
const DefaultPath = "htmlgen.yaml"

// Config represents the application configuration
type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Content    ContentConfig    `yaml:"content"`
	Render     RenderConfig     `yaml:"render"`
	Timestamps TimestampsConfig `yaml:"timestamps"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// PathsConfig locates every input and the output tree.
type PathsConfig struct {
	Template       string `yaml:"template"`
	Translations   string `yaml:"translations"`
	AlternateLinks string `yaml:"alternate_links"`
	Content        string `yaml:"content"`
	ExtraHead      string `yaml:"extra_head"`
	ExtraScripts   string `yaml:"extra_scripts"`
	Output         string `yaml:"output"`
}

// ContentConfig selects which files in the content tree are pages.
type ContentConfig struct {
	Extensions []string `yaml:"extensions,omitempty"`
	Markdown   bool     `yaml:"markdown"` // Render .md fragments to HTML
}

// RenderConfig controls page assembly.
type RenderConfig struct {
	ContentIndent      int  `yaml:"content_indent"`
	ExtraHeadIndent    int  `yaml:"extra_head_indent"`
	ExtraScriptsIndent int  `yaml:"extra_scripts_indent"`
	AllowUnresolved    bool `yaml:"allow_unresolved"`
}

// TimestampsConfig controls last-modified metadata.
type TimestampsConfig struct {
	Source   TimestampSource `yaml:"source"`
	Timezone string          `yaml:"timezone,omitempty"` // IANA name, empty for local time
}

// MetricsConfig enables the Prometheus textfile written after each build.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// TimestampSource selects where last-modified times come from.
type TimestampSource string

const (
	TimestampSourceMtime TimestampSource = "mtime"
	TimestampSourceGit   TimestampSource = "git"
)

var timestampSources = normalization.New("timestamps.source", map[string]TimestampSource{
	"mtime": TimestampSourceMtime,
	"git":   TimestampSourceGit,
}, TimestampSourceMtime)

// Load loads configuration from the specified file. An empty path or a
// missing DefaultPath yields the defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	if configPath == "" {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && configPath == DefaultPath {
			cfg := Default()
			return cfg, ValidateConfig(cfg)
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	return Parse(data, configPath)
}

// Parse decodes YAML configuration, expanding ${VAR} references first.
func Parse(data []byte, source string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			WithContext("path", source).
			Build()
	}
	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}
