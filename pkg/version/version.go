// Package version holds build metadata, set at link time with
// -ldflags "-X github.com/NERVsystems/mapmeasure/pkg/version.BuildVersion=...".
package version

import (
	"fmt"
	"runtime"
)

var (
	BuildVersion = "0.1.0"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   BuildVersion,
		Commit:    BuildCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String formats i for `-version` output.
func (i Info) String() string {
	return fmt.Sprintf("mapmeasure %s (%s) built on %s with %s",
		i.Version, i.Commit, i.BuildDate, i.GoVersion)
}

// UserAgent returns the User-Agent sent to external services.
func (i Info) UserAgent() string {
	return "mapmeasure/" + i.Version
}
