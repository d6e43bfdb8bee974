package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"     // Version string (e.g., "v0.3.0")
	GitCommit = "unknown" // Git commit hash
	GitTag    = "unknown" // Git tag
	BuildTime = "unknown" // Build timestamp
	GitDirty  = ""        // "dirty" if working directory has uncommitted changes
)

// Info is the build metadata printed by "mss-retouch version"
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// GetVersion returns the version string for the application
func GetVersion() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}

	version := GitTag
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" && !strings.HasSuffix(GitTag, commit) {
		version = fmt.Sprintf("%s-%s", GitTag, commit)
	}
	if GitDirty == "dirty" {
		version += "-dirty"
	}
	return version
}

// GetInfo collects version and build metadata
func GetInfo() Info {
	info := Info{
		Version:   GetVersion(),
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
	}
	return info
}

func (i Info) String() string {
	s := "mss-retouch " + i.Version
	if i.GitCommit != "unknown" && i.GitCommit != "" {
		s += fmt.Sprintf(" (commit: %s)", i.GitCommit)
	}
	if i.BuildTime != "unknown" && i.BuildTime != "" {
		s += fmt.Sprintf(" built %s", i.BuildTime)
	}
	if i.GoVersion != "" {
		s += " " + i.GoVersion
	}
	return s
}
