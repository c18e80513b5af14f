package main

import (
	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <process_id>",
		Short: "Get status of a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := requestContext(cmd.Context(), cfg)
			defer cancel()

			process, err := c.Get(ctx, args[0])
			if err != nil {
				return handleForbidden(cmd, err, "get its status")
			}
			printProcessTable(cmd.OutOrStdout(), []v1.Process{*process})
			return nil
		},
	}
	return cmd
}
