package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/htmlgen/internal/config"
	"git.home.luguber.info/inful/htmlgen/internal/metrics"
	"git.home.luguber.info/inful/htmlgen/internal/site"
)

// Global carries state shared by every command.
type Global struct {
	// Stderr receives log output; nil means os.Stderr.
	Stderr io.Writer
}

func (g *Global) stderr() io.Writer {
	if g == nil || g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

// CLI is the root command model.
type CLI struct {
	Config    string `short:"c" help:"Configuration file path (default htmlgen.yaml, optional)"`
	Verbose   bool   `short:"v" help:"Enable verbose logging"`
	LogFormat string `name:"log-format" help:"Log output format (text|json); overrides logging.format"`

	Build      BuildCmd   `cmd:"" default:"withargs" help:"Build every page once (default command)"`
	Watch      WatchCmd   `cmd:"" help:"Build, then rebuild whenever an input changes"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// loadConfig reads the configuration and installs the logger it selects.
// Flags win over the file.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		c.setupLogging(g, config.Default().Logging)
		return nil, err
	}
	c.setupLogging(g, cfg.Logging)
	return cfg, nil
}

func (c *CLI) setupLogging(g *Global, lc config.LoggingConfig) {
	level := logLevel(lc.Level)
	if c.Verbose {
		level = slog.LevelDebug
	}
	format := lc.Format
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(g.stderr(), opts)
	} else {
		handler = slog.NewTextHandler(g.stderr(), opts)
	}
	slog.SetDefault(slog.New(handler))
}

func logLevel(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newSite applies command overrides and wires metrics.
func newSite(cfg *config.Config, output string, keepGoing bool) (*site.Site, error) {
	if output != "" {
		cfg.Paths.Output = output
		if err := config.ValidateConfig(cfg); err != nil {
			return nil, err
		}
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Textfile != "" {
		recorder = metrics.NewPrometheusRecorder(nil).WithTextfile(cfg.Metrics.Textfile)
	}
	return site.New(cfg, site.WithRecorder(recorder), site.WithKeepGoing(keepGoing))
}
