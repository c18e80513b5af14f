package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs <process_id>",
		Short: "Print the output of a process",
		Long: "Print the output recorded so far. With --follow, stream only the lines produced from now on " +
			"until the process finishes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			processID := args[0]

			c, cfg, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()

			if follow {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()

				err := c.LiveLog(ctx, processID, func(line string) error {
					_, werr := io.WriteString(out, line)
					return werr
				})
				return handleForbidden(cmd, err, "read its output")
			}

			ctx, cancel := requestContext(cmd.Context(), cfg)
			defer cancel()

			process, err := c.Get(ctx, processID)
			if err != nil {
				return handleForbidden(cmd, err, "read its output")
			}
			_, err = io.WriteString(out, process.Log)
			return err
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream new output lines until the process finishes")

	return cmd
}
