package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/SanjoDeundiak/process-supervisor/internal/config"
	"github.com/SanjoDeundiak/process-supervisor/internal/grpcapi"
	"github.com/SanjoDeundiak/process-supervisor/internal/httpapi"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/runner"
	"golang.org/x/sync/errgroup"
)

// app owns the runner and both listeners. Either listener may be absent.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	runner *runner.Runner

	tlsConfig    *tls.Config
	httpListener net.Listener
	httpServer   *http.Server
	grpcServer   *grpcapi.GRPCServer
}

func newApp(cfg *config.Config, log *slog.Logger) (a *app, err error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a = &app{
		cfg:    cfg,
		logger: log,
		runner: runner.NewRunner(log, cfg.Process.RunnerSettings()),
	}

	if cfg.TLS.Enabled() {
		a.tlsConfig, err = cfg.TLS.ServerConfig()
		if err != nil {
			return nil, err
		}
	}

	if cfg.Server.HTTPAddress != "" {
		a.httpListener, err = net.Listen("tcp", cfg.Server.HTTPAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Server.HTTPAddress, err)
		}

		handler := httpapi.NewServer(httpapi.Parameters{
			Runner:                a.runner,
			Logger:                log,
			RequireClientIdentity: a.tlsConfig != nil,
		}).Handler()
		a.httpServer = httpapi.NewHTTPServer(cfg.Server.HTTPAddress, handler, a.tlsConfig)
	}

	if cfg.Server.GRPCAddress != "" {
		lis, listenErr := grpcapi.Listen(cfg.Server.GRPCAddress)
		if listenErr != nil {
			if a.httpListener != nil {
				_ = a.httpListener.Close()
			}
			return nil, listenErr
		}

		service := grpcapi.NewProcessRunnerServiceServer(a.runner, log)
		a.grpcServer = grpcapi.NewGRPCServer(lis, service, a.tlsConfig, log)
	}

	return a, nil
}

// run serves until ctx ends or a listener fails, then shuts everything down.
func (a *app) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.httpServer != nil {
		g.Go(func() error {
			a.logger.InfoContext(ctx, "Starting HTTP server", "address", a.httpListener.Addr().String(), "tls", a.tlsConfig != nil)

			var err error
			if a.tlsConfig != nil {
				err = a.httpServer.ServeTLS(a.httpListener, "", "")
			} else {
				err = a.httpServer.Serve(a.httpListener)
			}
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}

			return err
		})
	}

	if a.grpcServer != nil {
		g.Go(func() error {
			a.logger.InfoContext(ctx, "Starting gRPC server", "address", a.grpcServer.Addr().String(), "tls", a.tlsConfig != nil)
			return a.grpcServer.Serve()
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
		defer cancel()

		return a.shutdown(shutdownCtx)
	})

	return g.Wait()
}

// shutdown kills every process first, which ends all live log streams, then stops the listeners.
func (a *app) shutdown(ctx context.Context) error {
	a.logger.InfoContext(ctx, "Shutting down")

	err := a.runner.Shutdown(ctx)

	var wg sync.WaitGroup
	var httpErr error
	if a.httpServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			httpErr = a.httpServer.Shutdown(ctx)
		}()
	}
	if a.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.grpcServer.Stop(ctx)
		}()
	}
	wg.Wait()

	return errors.Join(err, httpErr)
}
