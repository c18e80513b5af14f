package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start -- <command> [args...]",
		Short: "Start a new process",
		Long: "Start a new process. A single argument is split by the server using shell word rules, " +
			"so both `prn start -- ls -l /tmp` and `prn start \"ls -l /tmp\"` work.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("command to execute is required; use -- to separate CLI flags from the command")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := requestContext(cmd.Context(), cfg)
			defer cancel()

			process, err := c.Create(ctx, args[0], args[1:])
			if err != nil {
				return err
			}
			// Print only process ID
			fmt.Fprintln(cmd.OutOrStdout(), process.UUID)
			return nil
		},
	}
	return cmd
}
