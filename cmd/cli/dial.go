package main

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/SanjoDeundiak/process-supervisor/internal/config"
	"github.com/SanjoDeundiak/process-supervisor/pkg/client"
	"github.com/spf13/cobra"
)

// dial resolves the client configuration and connects over the selected API.
func dial() (client.Client, *config.ClientConfig, error) {
	cfg, err := config.ResolveClientConfig()
	if err != nil {
		return nil, nil, err
	}

	var tlsConfig *tls.Config
	if cfg.TLS.Enabled() {
		tlsConfig, err = cfg.TLS.ClientConfig()
		if err != nil {
			return nil, nil, err
		}
	}

	if cfg.API == config.APIGRPC {
		c, err := client.NewGRPCClient(cfg.GRPCAddress, tlsConfig)
		if err != nil {
			return nil, nil, err
		}
		return c, cfg, nil
	}

	return client.NewHTTPClient(cfg.HTTPAddress, tlsConfig), cfg, nil
}

// requestContext bounds a single request by the configured timeout.
func requestContext(parent context.Context, cfg *config.ClientConfig) (context.Context, context.CancelFunc) {
	if cfg.RequestTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, cfg.RequestTimeout)
}

// handleForbidden prints the message for another owner's process and swallows the error.
func handleForbidden(cmd *cobra.Command, err error, action string) error {
	if client.IsPermissionDenied(err) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Forbidden. Only the creator of the process can %s.\n", action)
		return nil
	}
	return err
}
