package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/htmlgen/cmd/htmlgen/commands"
	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("htmlgen"),
		kong.Description("Assemble localized HTML pages from content fragments and a shared template."),
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
