// Package appinfo provides customizable identity for the pluginhost CLI driver.
//
// All values can be overridden at build time using ldflags, allowing a
// white-labeled build of the host driver with a custom command name,
// description, and configuration path.
//
// # Build-time Customization
//
// Override identity at build time:
//
//	go build -ldflags "\
//	    -X github.com/hostkit/pluginhost/pkg/appinfo.CommandName=mycli \
//	    -X github.com/hostkit/pluginhost/pkg/appinfo.ProjectName=MyProject \
//	    -X github.com/hostkit/pluginhost/pkg/appinfo.ConfigFileName=.mycli.yml"
//
// # Available Variables
//
// The following variables can be customized:
//   - CommandName: the CLI command name (default: "pluginhostctl")
//   - ConfigFileName: the host configuration file name (default: ".pluginhost.yml")
//   - ProjectName: the project display name (default: "Pluginhost")
//   - Description: short description shown in help
//   - RepositoryURL: URL for documentation
//
// # Directory Structure
//
// Plugin directories are derived from ConfigFileName:
//
//	~/.pluginhost/plugins/   # global plugin directory
//	.pluginhost/plugins/     # local (project) plugin directory
package appinfo
