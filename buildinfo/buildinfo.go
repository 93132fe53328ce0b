// Package buildinfo provides build-time properties injected via ldflags:
//
//	go build -ldflags "-X github.com/nomis52/sensorsim/buildinfo.gitCommit=$(git rev-parse HEAD)"
package buildinfo

import "runtime"

// Properties holds build-time properties injected via ldflags.
type Properties struct {
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

var (
	buildTime = "unknown"
	gitCommit = "unknown"
)

// Get returns the current build properties.
func Get() Properties {
	return Properties{
		BuildTime: buildTime,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
	}
}

// LogAttrs returns the properties as slog key/value pairs.
func (p Properties) LogAttrs() []any {
	return []any{
		"build_time", p.BuildTime,
		"git_commit", p.GitCommit,
		"go_version", p.GoVersion,
	}
}
