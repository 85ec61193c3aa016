// Package buildinfo holds the version identifiers stamped into the
// solobank binary at build time.
package buildinfo

// Set via ldflags during release builds; the zero values identify a
// local development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
