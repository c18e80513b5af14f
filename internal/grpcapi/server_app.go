package grpcapi

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/internal/auth"
	"github.com/SanjoDeundiak/process-supervisor/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// GRPCServer encapsulates TLS/mTLS configuration, gRPC server instance and listener.
type GRPCServer struct {
	lis net.Listener
	s   *grpc.Server
}

// NewGRPCServer registers service on a gRPC server listening on lis. With a non-nil tlsConfig
// the server requires client certificates carrying a SPIFFE ID.
func NewGRPCServer(lis net.Listener, service v1.ProcessRunnerServiceServer, tlsConfig *tls.Config, log *slog.Logger) *GRPCServer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	unary := []grpc.UnaryServerInterceptor{loggingUnary(log)}
	stream := []grpc.StreamServerInterceptor{loggingStream(log)}

	var opts []grpc.ServerOption
	if tlsConfig != nil {
		opts = append(opts, grpc.Creds(credentials.NewTLS(tlsConfig)))
		unary = append(unary, auth.UnaryServerInterceptor)
		stream = append(stream, auth.StreamServerInterceptor)
	}
	opts = append(opts, grpc.ChainUnaryInterceptor(unary...), grpc.ChainStreamInterceptor(stream...))

	s := grpc.NewServer(opts...)
	v1.RegisterProcessRunnerServiceServer(s, service)

	return &GRPCServer{lis: lis, s: s}
}

// Listen opens a TCP listener on address.
func Listen(address string) (net.Listener, error) {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	return lis, nil
}

// Serve starts serving gRPC on the configured listener.
func (g *GRPCServer) Serve() error {
	return g.s.Serve(g.lis)
}

// Addr returns the network address the server is bound to.
func (g *GRPCServer) Addr() net.Addr { return g.lis.Addr() }

// Stop gracefully stops the gRPC server. Open live log streams end once ctx is done.
func (g *GRPCServer) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.s.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		g.s.Stop()
		<-done
	}
}

func loggingUnary(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.WithRequestID(ctx, "")
		resp, err := handler(ctx, req)
		if err != nil {
			log.WarnContext(ctx, "Request failed", "method", info.FullMethod, "error", err)
		} else {
			log.DebugContext(ctx, "Handled request", "method", info.FullMethod)
		}

		return resp, err
	}
}

func loggingStream(log *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err != nil {
			log.WarnContext(ss.Context(), "Stream failed", "method", info.FullMethod, "error", err)
		} else {
			log.DebugContext(ss.Context(), "Stream ended", "method", info.FullMethod)
		}

		return err
	}
}
