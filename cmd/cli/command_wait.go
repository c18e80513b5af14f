package main

import (
	"fmt"

	"github.com/SanjoDeundiak/process-supervisor/pkg/client"
	"github.com/spf13/cobra"
)

func newWaitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait <process_id>",
		Short: "Wait for a process to finish and print its final status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			process, err := client.WaitForExit(cmd.Context(), c, args[0], client.DefaultBackoffSettings())
			if err != nil {
				return handleForbidden(cmd, err, "wait for it")
			}
			fmt.Fprintln(cmd.OutOrStdout(), process.Status)
			return nil
		},
	}
	return cmd
}
