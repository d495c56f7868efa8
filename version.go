package tagframe

import (
	"runtime"
	"runtime/debug"

	"github.com/simonhull/tagframe/internal/registry"
)

// Version is the semantic version of the tagframe library.
const Version = "0.1.0"

// VersionInfo describes the build and the supported formats.
type VersionInfo struct {
	Version   string
	GitCommit string // "unknown" without VCS build info
	GoVersion string

	// Readable lists the formats Open accepts, Writable those Save
	// accepts.
	Readable []Format
	Writable []Format
}

// GetVersionInfo returns the version, the commit the binary was built
// from if the build recorded it, and the supported formats.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: "unknown",
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.GitCommit = s.Value
			}
		}
	}
	info.Readable, info.Writable = registry.Formats()
	return info
}
