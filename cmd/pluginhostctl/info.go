package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInfoCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show a discovered plug-in's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := buildManager(*configPath)
			if err != nil {
				return err
			}

			info, ok := manager.Info(args[0])
			if !ok {
				return fmt.Errorf("plugin %q not found", args[0])
			}

			fmt.Printf("%s %s\n", color.CyanString("name:"), info.Name)
			fmt.Printf("%s %s\n", color.CyanString("version:"), info.Version)
			fmt.Printf("%s %s\n", color.CyanString("author:"), info.Author)
			fmt.Printf("%s %s\n", color.CyanString("license:"), info.License)
			for _, dep := range info.Dependencies {
				fmt.Printf("%s %s >= %s\n", color.CyanString("depends on:"), dep.Name, dep.Version)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	return cmd
}
