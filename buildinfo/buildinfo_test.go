package buildinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	p := Get()
	assert.Equal(t, "unknown", p.BuildTime)
	assert.Equal(t, "unknown", p.GitCommit)
	assert.Equal(t, runtime.Version(), p.GoVersion)
}

func TestProperties_LogAttrs(t *testing.T) {
	p := Properties{BuildTime: "2026-10-01T00:00:00Z", GitCommit: "abc123", GoVersion: "go1.23.2"}
	assert.Equal(t, []any{
		"build_time", "2026-10-01T00:00:00Z",
		"git_commit", "abc123",
		"go_version", "go1.23.2",
	}, p.LogAttrs())
}
