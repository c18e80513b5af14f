// Package httpapi serves the process runner over a JSON HTTP API.
package httpapi

import (
	"crypto/tls"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SanjoDeundiak/process-supervisor/internal/auth"
	"github.com/SanjoDeundiak/process-supervisor/internal/logger"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/runner"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
)

const (
	BasePath   = "/api/v1"
	HealthPath = "/health"

	readHeaderTimeout = 10 * time.Second
)

type (
	Parameters struct {
		Runner *runner.Runner
		Logger *slog.Logger
		// RequireClientIdentity rejects API requests without a SPIFFE ID in the client certificate.
		RequireClientIdentity bool
	}

	Server struct {
		runner *runner.Runner
		logger *slog.Logger
		engine *gin.Engine
	}
)

func NewServer(params Parameters) *Server {
	log := params.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		runner: params.Runner,
		logger: log,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(sloggin.NewWithConfig(log, sloggin.Config{
		DefaultLevel:     slog.LevelDebug,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		Filters: []sloggin.Filter{
			func(c *gin.Context) bool { return c.Request.URL.Path != HealthPath },
		},
	}))
	engine.Use(requestContext, gin.Recovery())

	engine.GET(HealthPath, s.health)

	api := engine.Group(BasePath)
	if params.RequireClientIdentity {
		api.Use(auth.GinMiddleware())
	}
	api.GET("/processes", s.listProcesses)
	api.POST("/processes", s.createProcess)
	api.GET("/processes/:id", s.getProcess)
	api.GET("/processes/:id/live_log", s.liveLog)
	api.DELETE("/processes/:id", s.deleteProcess)

	s.engine = engine

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// NewHTTPServer wraps handler in an http.Server listening on address. A nil tlsConfig serves plain HTTP.
func NewHTTPServer(address string, handler http.Handler, tlsConfig *tls.Config) *http.Server {
	return &http.Server{
		Addr:              address,
		Handler:           handler,
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// requestContext tags the request context with the request id assigned by the access logger.
func requestContext(c *gin.Context) {
	ctx := logger.WithRequestID(c.Request.Context(), sloggin.GetRequestID(c))
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// GET /health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
