package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/htmlgen/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct {
	out io.Writer
}

func (v *VersionCmd) Run(_ *Global, _ *CLI) error {
	out := v.out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintln(out, version.String())
	return err
}
