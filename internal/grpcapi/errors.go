package grpcapi

import (
	"errors"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/runner"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	var spawnErr *lib.SpawnError

	switch {
	case errors.Is(err, lib.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, lib.ErrInvalidCommand):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, lib.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, runner.ErrClosed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.As(err, &spawnErr):
		return status.Errorf(codes.Aborted, "error starting process: %v", err)
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
