package pluginhost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "1.0.0", cfg.HostAPIVersion)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.SearchDirs)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pluginhost.yaml")
	doc := "appDirectory: /opt/app\nhostApiVersion: 2.1.0\nsearchDirs:\n  - /opt/app/plugins\nrecursive: true\nstrict: true\nlogLevel: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/app", cfg.AppDirectory)
	assert.Equal(t, "2.1.0", cfg.HostAPIVersion)
	assert.Equal(t, []string{"/opt/app/plugins"}, cfg.SearchDirs)
	assert.True(t, cfg.Recursive)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestHclogLevel_DefaultsToInfo(t *testing.T) {
	assert.Equal(t, hclog.Info, hclogLevel(""))
	assert.Equal(t, hclog.Info, hclogLevel("not-a-level"))
	assert.Equal(t, hclog.Debug, hclogLevel("debug"))
}
