// Package version reports the medibook build version, set at link time with
// -ldflags "-X github.com/rshade/medibook/pkg/version.version=v1.2.3".
package version

import "fmt"

//nolint:gochecknoglobals // Set via -ldflags at build time.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the build.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the build was made from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("medibook %s (commit %s, built %s)", version, gitCommit, buildDate)
}
