// Package appinfo holds the host driver's customizable identity: command
// name, configuration file name, and the derived plugin directory layout.
// Values can be overridden at build time with ldflags to white-label the
// CLI under a different name.
package appinfo

import (
	"fmt"
	"os"
	"path/filepath"
)

// These variables can be overridden at build time using ldflags.
// Example: go build -ldflags "-X github.com/hostkit/pluginhost/pkg/appinfo.CommandName=mycli"
var (
	// CommandName is the name of the CLI command.
	CommandName = "pluginhostctl"

	// ConfigFileName is the name of the host configuration file.
	ConfigFileName = ".pluginhost.yml"

	// ProjectName is the display name of the host project.
	ProjectName = "Pluginhost"

	// Description is a short description of the CLI tool.
	Description = "native plug-in lifecycle host"

	// LongDescription provides more detail about the tool.
	LongDescription = `A host-facing driver for the pluginhost library: it searches
directories for native plug-in shared objects, resolves their dependency
graph, activates them in dependency order, and tears them down again.`

	// CompletionDir is the directory name used for shell completions.
	CompletionDir = "pluginhostctl"

	// RepositoryURL is the URL of the source repository.
	RepositoryURL = "https://github.com/hostkit/pluginhost"
)

// GetConfigPath returns the full path to the host configuration file.
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ConfigFileName)
}

// GetShortDescription returns a formatted short description.
func GetShortDescription() string {
	return fmt.Sprintf("%s %s", ProjectName, Description)
}

// GetFullDescription returns the full formatted description for the CLI.
func GetFullDescription() string {
	return fmt.Sprintf(`%s discovers, loads, and unloads native plug-ins.
It resolves declared inter-plug-in dependencies, orders activation so that
every dependency is live before its dependants, and mirrors that order in
reverse when tearing plug-ins back down.`,
		capitalize(CommandName))
}

// GetCompletionPath returns the path for shell completion files.
func GetCompletionPath(shell string) string {
	var dir string
	switch shell {
	case "bash":
		dir = "/usr/local/etc/bash_completion.d"
	case "zsh":
		dir = "/usr/local/share/zsh/site-functions"
	case "fish":
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config", "fish", "completions")
	default:
		return ""
	}
	return filepath.Join(dir, CompletionDir)
}

// capitalize returns a string with the first letter capitalized.
func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return string(s[0]-32) + s[1:]
}
