package appinfo

import (
	"os"
	"path/filepath"
	"strings"
)

// GetPluginDirName derives the dot-directory name that holds host state
// (including plug-ins) from ConfigFileName, e.g. ".pluginhost.yml" -> ".pluginhost".
func GetPluginDirName() string {
	name := ConfigFileName
	if ext := filepath.Ext(name); ext != "" {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

// GetGlobalPluginDir returns the process-wide plugin directory under the
// user's home, e.g. ~/.pluginhost/plugins.
func GetGlobalPluginDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, GetPluginDirName(), "plugins")
}

// GetLocalPluginDir returns the project-local plugin directory rooted at baseDir.
func GetLocalPluginDir(baseDir string) string {
	return filepath.Join(baseDir, GetPluginDirName(), "plugins")
}
