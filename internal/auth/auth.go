// Package auth identifies callers by the SPIFFE ID of their TLS client certificate and
// restricts access to processes to the identity that created them.
package auth

import (
	"context"
	"crypto/tls"
	"net/http"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/internal/logger"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

const missingSpiffeID = "client must have SPIFFE ID"

type spiffeIDContextKey struct{}

// SpiffeIDFromContext returns the caller identity injected by one of the middlewares.
func SpiffeIDFromContext(ctx context.Context) (string, bool) {
	spiffeID, ok := ctx.Value(spiffeIDContextKey{}).(string)
	return spiffeID, ok
}

// InjectSpiffeID stores the caller identity in ctx and tags the context's log records with it.
func InjectSpiffeID(ctx context.Context, spiffeID string) context.Context {
	ctx = context.WithValue(ctx, spiffeIDContextKey{}, spiffeID)

	return logger.WithCaller(ctx, spiffeID)
}

// SpiffeIDFromTLS returns the trust domain of the first SPIFFE URI SAN of the peer's leaf
// certificate, e.g. spiffe://client1 -> "client1".
func SpiffeIDFromTLS(state *tls.ConnectionState) (string, bool) {
	if state == nil || len(state.PeerCertificates) == 0 || state.PeerCertificates[0] == nil {
		return "", false
	}

	leaf := state.PeerCertificates[0]
	for _, uri := range leaf.URIs {
		if uri == nil {
			continue
		}
		if uri.Scheme == "spiffe" && uri.Host != "" {
			return uri.Host, true
		}
	}

	return "", false
}

func spiffeIDFromPeer(ctx context.Context) (string, bool) {
	// First, check if it was already injected into context.
	if v, ok := SpiffeIDFromContext(ctx); ok {
		return v, true
	}

	p, ok := peer.FromContext(ctx)
	if !ok || p == nil {
		return "", false
	}

	ti, ok := p.AuthInfo.(credentials.TLSInfo)
	if !ok {
		return "", false
	}

	return SpiffeIDFromTLS(&ti.State)
}

// UnaryServerInterceptor rejects calls without a SPIFFE ID and injects it into the context.
func UnaryServerInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	spiffeID, ok := spiffeIDFromPeer(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, missingSpiffeID)
	}

	return handler(InjectSpiffeID(ctx, spiffeID), req)
}

type streamWithCtx struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *streamWithCtx) Context() context.Context { return s.ctx }

// StreamServerInterceptor is the streaming counterpart of UnaryServerInterceptor.
func StreamServerInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	spiffeID, ok := spiffeIDFromPeer(ss.Context())
	if !ok {
		return status.Error(codes.Unauthenticated, missingSpiffeID)
	}

	return handler(srv, &streamWithCtx{ServerStream: ss, ctx: InjectSpiffeID(ss.Context(), spiffeID)})
}

// GinMiddleware rejects requests without a SPIFFE ID with 401 and injects it into the request context.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		spiffeID, ok := SpiffeIDFromTLS(c.Request.TLS)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Message: missingSpiffeID})
			return
		}

		c.Request = c.Request.WithContext(InjectSpiffeID(c.Request.Context(), spiffeID))
		c.Next()
	}
}

// Authorize allows access when the caller is the owner of the process. Without an identity in
// ctx, only processes with no owner are accessible.
func Authorize(ctx context.Context, owner string) error {
	spiffeID, _ := SpiffeIDFromContext(ctx)
	if spiffeID != owner {
		return lib.ErrPermissionDenied
	}

	return nil
}

// Owner returns the identity new processes created under ctx belong to.
func Owner(ctx context.Context) string {
	spiffeID, _ := SpiffeIDFromContext(ctx)
	return spiffeID
}
