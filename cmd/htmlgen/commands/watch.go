package commands

import (
	"context"
	"os/signal"
	"syscall"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output string `short:"o" help:"Output directory; overrides paths.output" type:"path"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	// Watch mode always keeps going so one bad page does not hide the rest.
	s, err := newSite(cfg, w.Output, true)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return s.Watch(ctx)
}
