// Package version provides build version information for llmedit.
// Variables are set at build time via ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/llmedit/internal/version.Version=v1.0.0 \
//	  -X github.com/jpl-au/llmedit/internal/version.GitCommit=abc123 \
//	  -X github.com/jpl-au/llmedit/internal/version.BuildTime=2026-01-15T10:30:00Z"
//
// Binaries built with "go install module@version" carry no ldflags; their
// module version and VCS revision are read from the embedded build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build information. Set via ldflags at build time.
var (
	Version   = "dev"     // Version tag (e.g., "v1.0.0")
	GitCommit = "unknown" // Short git commit hash
	BuildTime = "unknown" // RFC3339 build timestamp
)

// Info holds structured version information.
type Info struct {
	BuildTag  string `json:"build_tag"`  // Version tag (e.g., "v1.0.0" or "dev")
	BuildTime string `json:"build_time"` // RFC3339 build timestamp
	GitCommit string `json:"git_commit"` // Short git commit hash
	GoVersion string `json:"go_version"` // Go runtime version
	Platform  string `json:"platform"`   // OS and architecture (e.g., "darwin arm64")
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get returns the current version information.
func Get() Info {
	info := Info{
		BuildTag:  Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
	}
	fillFromBuildInfo(&info)
	return info
}

// fillFromBuildInfo replaces defaults left by a build without ldflags.
func fillFromBuildInfo(info *Info) {
	bi, ok := readBuildInfo()
	if !ok {
		return
	}
	if info.BuildTag == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.BuildTag = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" && s.Value != "" {
				info.GitCommit = s.Value[:min(len(s.Value), 7)]
			}
		case "vcs.time":
			if info.BuildTime == "unknown" && s.Value != "" {
				info.BuildTime = s.Value
			}
		}
	}
}

// String returns a formatted version string suitable for display.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build Tag:    %s\n", i.BuildTag)
	fmt.Fprintf(&b, "Build Time:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version:   %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform:     %s\n", i.Platform)
	fmt.Fprintf(&b, "Git Commit:   %s\n", i.GitCommit)
	return b.String()
}

// Short returns just the version string (e.g., "v1.0.0" or "dev").
func Short() string {
	return Get().BuildTag
}
