package main

import (
	"github.com/SanjoDeundiak/process-supervisor/internal/config"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prn",
		Short:         "Process Runner CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterClientFlags(root.PersistentFlags())

	root.AddCommand(newListCmd())
	root.AddCommand(newStartCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newStopCmd())
	root.AddCommand(newLogsCmd())
	root.AddCommand(newWaitCmd())

	return root
}
