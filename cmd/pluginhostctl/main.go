// Command pluginhostctl is a minimal driver for exercising a Manager from
// the shell: point it at a directory of shared objects, search, load, and
// inspect the result.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	hosterrors "github.com/hostkit/pluginhost/pkg/errors"
	"github.com/hostkit/pluginhost/pkg/logging"
	"github.com/hostkit/pluginhost/pkg/pluginhost"
)

func main() {
	logging.SetDefault(logging.New(logging.FromEnv()))

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		logging.Error("command failed", logging.Err(err))
		hosterrors.Exit(err)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "pluginhostctl",
		Short: "Inspect and drive a plug-in host's Manager from the shell",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a pluginhost YAML configuration file")

	root.AddCommand(
		newSearchCommand(&configPath),
		newLoadCommand(&configPath),
		newListCommand(&configPath),
		newInfoCommand(&configPath),
	)
	return root
}

func buildManager(configPath string) (*pluginhost.Manager, error) {
	cfg := pluginhost.DefaultConfig()
	if configPath != "" {
		loaded, err := pluginhost.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logging.Debug("loaded configuration", logging.String("path", configPath))
	}
	return pluginhost.NewManager(cfg), nil
}

func printReport(name string, outcome pluginhost.Outcome, detail string) {
	label := name
	if label == "" {
		label = "-"
	}
	if outcome.Ok() {
		return
	}
	fmt.Fprintln(os.Stderr, color.YellowString("  %-20s %-24s %s", label, outcome.String(), detail))
}
