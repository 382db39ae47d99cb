// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/packview/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/packview/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/packview/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version, e.g. "v1.2.3"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Scope identifies the build for cache keys. Release builds are scoped by
// version; development builds also carry the commit, since rendering code
// changes between commits without a version bump.
func Scope() string {
	if Version == "dev" {
		return Version + "+" + Commit + ":"
	}
	return Version + ":"
}
