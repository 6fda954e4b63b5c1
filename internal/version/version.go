// Package version reports build metadata stamped in with -ldflags -X.
package version

import "fmt"

var (
	Release   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info is the build metadata of the running binary.
type Info struct {
	Release   string
	Commit    string
	BuildTime string
}

// Get returns the build metadata with the commit abbreviated.
func Get() Info {
	return Info{Release: Release, Commit: shortCommit(Commit), BuildTime: BuildTime}
}

func String() string {
	i := Get()
	return fmt.Sprintf("kanban %s (commit: %s, built: %s)", i.Release, i.Commit, i.BuildTime)
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
