package pluginhost

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/hostkit/pluginhost/pkg/appinfo"
	hosterrors "github.com/hostkit/pluginhost/pkg/errors"
)

// ManagerConfig is the host-facing configuration for a Manager: where to
// search, which API version plug-ins must be compatible with, and how
// strictly to validate candidates before loading them.
type ManagerConfig struct {
	// AppDirectory is the value returned to plug-ins for GetAppDirectory.
	AppDirectory string `yaml:"appDirectory"`

	// HostAPIVersion is the version plug-in metadata's "api" field is
	// checked against.
	HostAPIVersion string `yaml:"hostApiVersion"`

	// SearchDirs are the directories Search walks, in order.
	SearchDirs []string `yaml:"searchDirs"`

	// Recursive controls whether Search descends into subdirectories.
	Recursive bool `yaml:"recursive"`

	// Strict enables the validator's world-writable and trusted-path
	// checks.
	Strict bool `yaml:"strict"`

	// LogLevel names the hclog level for the manager's log sink
	// ("trace", "debug", "info", "warn", "error", "off").
	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns a ManagerConfig seeded with the host's default
// global plug-in directory and a non-strict, info-level configuration.
func DefaultConfig() ManagerConfig {
	return ManagerConfig{
		AppDirectory:   ".",
		HostAPIVersion: "1.0.0",
		SearchDirs:     []string{appinfo.GetGlobalPluginDir()},
		Recursive:      false,
		Strict:         false,
		LogLevel:       "info",
	}
}

// LoadConfig reads and decodes a YAML-encoded ManagerConfig from path. Any
// field absent from the document keeps its DefaultConfig value.
func LoadConfig(path string) (ManagerConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return ManagerConfig{}, hosterrors.NewConfigError(
			"failed to read configuration file",
			hosterrors.WithContext("path", path),
			hosterrors.WithCause(err),
		)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ManagerConfig{}, hosterrors.NewConfigError(
			"failed to parse configuration file",
			hosterrors.WithContext("path", path),
			hosterrors.WithCause(err),
		)
	}

	return cfg, nil
}

// hclogLevel maps the configured level name to an hclog.Level, defaulting
// to Info for an unrecognized or empty name.
func hclogLevel(name string) hclog.Level {
	level := hclog.LevelFromString(name)
	if level == hclog.NoLevel {
		return hclog.Info
	}
	return level
}
