package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := requestContext(cmd.Context(), cfg)
			defer cancel()

			processes, err := c.List(ctx)
			if err != nil {
				return err
			}
			printProcessTable(cmd.OutOrStdout(), processes)
			return nil
		},
	}
	return cmd
}
