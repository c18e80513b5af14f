// Package grpcapi serves the process runner over gRPC.
package grpcapi

import (
	"context"
	"io"
	"log/slog"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/internal/auth"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/runner"
)

type ProcessRunnerServiceServer struct {
	v1.UnimplementedProcessRunnerServiceServer
	runner *runner.Runner
	logger *slog.Logger
}

func NewProcessRunnerServiceServer(r *runner.Runner, logger *slog.Logger) *ProcessRunnerServiceServer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ProcessRunnerServiceServer{
		runner: r,
		logger: logger,
	}
}

// checkOwnership returns the status of the process when the caller may access it.
func (s *ProcessRunnerServiceServer) checkOwnership(ctx context.Context, id string) (*lib.ProcessSummary, error) {
	summary, err := s.runner.Status(id)
	if err != nil {
		return nil, toStatusError(err)
	}

	if err := auth.Authorize(ctx, summary.Owner); err != nil {
		return nil, toStatusError(err)
	}

	return summary, nil
}
