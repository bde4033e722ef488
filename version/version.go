// Package version exposes build metadata stamped into the winrtgen
// binary via -ldflags at release time.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time via ldflags; the zero build is "dev".
var (
	// Version is the semantic version (if tagged)
	Version = "dev"

	// CommitHash is the git commit hash when the binary was built
	CommitHash = "none"

	// BuildTime is when the binary was built
	BuildTime = "unknown"
)

// Info bundles the stamped values with runtime facts for display.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a single-line human-readable version.
func (i Info) String() string {
	return fmt.Sprintf("winrtgen %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}
