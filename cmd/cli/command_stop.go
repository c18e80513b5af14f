package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop <process_id>",
		Short: "Kill a process and forget it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			processID := args[0]

			c, cfg, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := requestContext(cmd.Context(), cfg)
			defer cancel()

			if err := c.Delete(ctx, processID); err != nil {
				return handleForbidden(cmd, err, "stop it")
			}
			fmt.Fprintln(cmd.OutOrStdout(), processID)
			return nil
		},
	}
	return cmd
}
