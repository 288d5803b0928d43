package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfoFillsDefaults(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.1"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-03-01T12:00:00Z"},
			},
		}, true
	}

	info := Get()
	assert.Equal(t, "v0.3.1", info.BuildTag)
	assert.Equal(t, "0123456", info.GitCommit)
	assert.Equal(t, "2026-03-01T12:00:00Z", info.BuildTime)
	assert.Contains(t, info.String(), "Build Tag:    v0.3.1")
}

func TestLdflagsWin(t *testing.T) {
	origInfo, origVersion := readBuildInfo, Version
	t.Cleanup(func() { readBuildInfo, Version = origInfo, origVersion })
	Version = "v1.0.0"
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	}

	assert.Equal(t, "v1.0.0", Short())
}
