package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every discovered plug-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := buildManager(*configPath)
			if err != nil {
				return err
			}

			for _, name := range manager.List() {
				state := "discovered"
				if manager.IsLoaded(name) {
					state = "loaded"
				}
				fmt.Printf("%-24s %s\n", name, state)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	return cmd
}
