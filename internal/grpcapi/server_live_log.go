package grpcapi

import (
	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"google.golang.org/grpc"
)

// LiveLog streams output lines produced after the call arrived until the process finishes or
// the client cancels.
func (s *ProcessRunnerServiceServer) LiveLog(request *v1.LiveLogRequest, streaming grpc.ServerStreamingServer[v1.LiveLogResponse]) error {
	ctx := streaming.Context()

	if _, err := s.checkOwnership(ctx, request.UUID); err != nil {
		return err
	}

	sub, err := s.runner.Subscribe(request.UUID)
	if err != nil {
		return toStatusError(err)
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-sub.Lines():
			if !ok {
				return nil
			}

			if err := streaming.Send(&v1.LiveLogResponse{Line: line}); err != nil {
				s.logger.DebugContext(ctx, "Failed to send live log line", "id", request.UUID, "error", err)
				return err
			}
		}
	}
}
