package client

import (
	"context"
	"crypto/tls"
	"errors"
	"io"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type grpcClient struct {
	conn   *grpc.ClientConn
	client v1.ProcessRunnerServiceClient
}

// NewGRPCClient returns a Client for the gRPC API at address. A nil tlsConfig uses an
// insecure connection.
func NewGRPCClient(address string, tlsConfig *tls.Config, opts ...grpc.DialOption) (Client, error) {
	creds := insecure.NewCredentials()
	if tlsConfig != nil {
		creds = credentials.NewTLS(tlsConfig)
	}

	conn, err := grpc.NewClient(address, append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &grpcClient{conn: conn, client: v1.NewProcessRunnerServiceClient(conn)}, nil
}

func (c *grpcClient) List(ctx context.Context) ([]v1.Process, error) {
	resp, err := c.client.ListProcesses(ctx, &v1.ListProcessesRequest{})
	if err != nil {
		return nil, grpcError(err)
	}

	return resp.Processes, nil
}

func (c *grpcClient) Create(ctx context.Context, cmd string, args []string) (*v1.Process, error) {
	process, err := c.client.CreateProcess(ctx, &v1.CreateProcessRequest{Cmd: cmd, Args: args})
	if err != nil {
		return nil, grpcError(err)
	}

	return process, nil
}

func (c *grpcClient) Get(ctx context.Context, id string) (*v1.Process, error) {
	process, err := c.client.GetProcess(ctx, &v1.GetProcessRequest{UUID: id})
	if err != nil {
		return nil, grpcError(err)
	}

	return process, nil
}

func (c *grpcClient) LiveLog(ctx context.Context, id string, fn func(line string) error) error {
	stream, err := c.client.LiveLog(ctx, &v1.LiveLogRequest{UUID: id})
	if err != nil {
		return grpcError(err)
	}

	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return grpcError(err)
		}

		if err := fn(msg.Line); err != nil {
			return err
		}
	}
}

func (c *grpcClient) Delete(ctx context.Context, id string) error {
	_, err := c.client.DeleteProcess(ctx, &v1.DeleteProcessRequest{UUID: id})
	if err != nil {
		return grpcError(err)
	}

	return nil
}

func (c *grpcClient) Close() error {
	return c.conn.Close()
}

func grpcError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var kind error
	switch st.Code() {
	case codes.NotFound:
		kind = lib.ErrNotFound
	case codes.InvalidArgument:
		kind = lib.ErrInvalidCommand
	case codes.PermissionDenied:
		kind = lib.ErrPermissionDenied
	}

	return &ResponseError{Status: st.Code().String(), Message: st.Message(), kind: kind}
}
