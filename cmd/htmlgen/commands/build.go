package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/htmlgen/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output    string `short:"o" help:"Output directory; overrides paths.output" type:"path"`
	KeepGoing bool   `name:"keep-going" help:"Continue past failing pages and report them all at the end"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	s, err := newSite(cfg, b.Output, b.KeepGoing)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := s.Build(ctx)
	if err != nil {
		return err
	}
	slog.Info("Site generated",
		logfields.Output(cfg.Paths.Output),
		logfields.Count(report.Pages()),
		logfields.BuildID(report.BuildID))
	return nil
}
