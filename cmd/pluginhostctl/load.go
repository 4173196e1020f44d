package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLoadCommand(configPath *string) *cobra.Command {
	var dir string
	var tryToContinue bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Search a directory and activate every discovered plug-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := buildManager(*configPath)
			if err != nil {
				return err
			}

			if dir != "" {
				manager.Search(dir, false, printReport)
			}

			outcome := manager.Load(tryToContinue, printReport)
			fmt.Printf("%s %s\n", color.CyanString("load:"), outcome)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to search before loading")
	cmd.Flags().BoolVar(&tryToContinue, "try-to-continue", true, "keep loading past per-plugin dependency faults")
	return cmd
}
