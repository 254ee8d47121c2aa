package version

import "fmt"

// Version is the release of this binary, set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/htmlgen/internal/version.Version=v1.2.0".
var Version = "unknown"

// Build metadata, set the same way.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String describes the running binary in one line.
func String() string {
	return fmt.Sprintf("htmlgen %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
