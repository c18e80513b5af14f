package grpcapi

import (
	"context"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/internal/auth"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
)

func (s *ProcessRunnerServiceServer) ListProcesses(ctx context.Context, _ *v1.ListProcessesRequest) (*v1.ListProcessesResponse, error) {
	response := &v1.ListProcessesResponse{Processes: []v1.Process{}}
	for _, summary := range s.runner.List() {
		if auth.Authorize(ctx, summary.Owner) != nil {
			continue
		}
		response.Processes = append(response.Processes, *v1.FromSummary(&summary))
	}

	return response, nil
}

func (s *ProcessRunnerServiceServer) CreateProcess(ctx context.Context, request *v1.CreateProcessRequest) (*v1.Process, error) {
	command, err := lib.ParseCommand(request.Cmd, request.Args)
	if err != nil {
		return nil, toStatusError(err)
	}

	summary, err := s.runner.Create(ctx, lib.CreateRequest{Command: command, Owner: auth.Owner(ctx)})
	if err != nil {
		return nil, toStatusError(err)
	}

	return v1.FromSummary(summary), nil
}

func (s *ProcessRunnerServiceServer) GetProcess(ctx context.Context, request *v1.GetProcessRequest) (*v1.Process, error) {
	if _, err := s.checkOwnership(ctx, request.UUID); err != nil {
		return nil, err
	}

	summary, err := s.runner.Get(request.UUID)
	if err != nil {
		return nil, toStatusError(err)
	}

	return v1.FromSummary(summary), nil
}

func (s *ProcessRunnerServiceServer) DeleteProcess(ctx context.Context, request *v1.DeleteProcessRequest) (*v1.DeleteProcessResponse, error) {
	if _, err := s.checkOwnership(ctx, request.UUID); err != nil {
		return nil, err
	}

	if err := s.runner.Delete(ctx, request.UUID); err != nil {
		return nil, toStatusError(err)
	}

	return &v1.DeleteProcessResponse{}, nil
}
