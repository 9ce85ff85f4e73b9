// FILE: tracekit/src/internal/version/version.go
package version

import "fmt"

// Populated at build time via -ldflags; the zero build identifies
// itself as a development tree.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String renders the full line printed by -version.
func String() string {
	commit := GitCommit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("tracekit %s (commit %s, built %s)", Version, commit, BuildTime)
}

// Short returns just the version tag.
func Short() string {
	return Version
}
