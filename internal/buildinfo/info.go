// Package buildinfo carries version details stamped in at link time, e.g.
// -ldflags "-X github.com/cleared-dev/achview/internal/buildinfo.Version=v1.2.0".
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
