package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/SanjoDeundiak/process-supervisor/internal/config"
	"github.com/SanjoDeundiak/process-supervisor/internal/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prn-server",
		Short:         "Process Runner server",
		Long:          "Runs commands on behalf of clients and serves their status and output over HTTP and gRPC.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.RegisterConfigFile(); err != nil {
				return err
			}

			cfg, err := config.ResolveConfig()
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log.Path, cfg.Log.Level)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}

			return a.run(ctx)
		},
	}

	config.RegisterServerFlags(root.Flags())

	return root
}
