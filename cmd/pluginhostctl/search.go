package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSearchCommand(configPath *string) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "search <dir>",
		Short: "Discover candidate plug-ins under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := buildManager(*configPath)
			if err != nil {
				return err
			}

			outcome := manager.Search(args[0], recursive, printReport)
			fmt.Printf("%s %s (%d plug-in(s) discovered)\n", color.CyanString("search:"), outcome, manager.Count())
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	return cmd
}
