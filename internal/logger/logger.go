package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
)

const (
	defaultLogFile = "prn-server.log"
	filePermission = 0o600

	RequestIDKey = "request_id"
	CallerKey    = "caller"
)

var (
	logLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}

	RequestIDContextKey = contextKey(RequestIDKey)
	CallerContextKey    = contextKey(CallerKey)
)

type (
	contextKey string

	contextHandler struct {
		slog.Handler
		keys []any
	}
)

// New builds the server logger. Records carry the request id and caller identity found in the
// context they are logged with.
func New(logPath, level string) *slog.Logger {
	return newWithWriter(logWriter(logPath), level)
}

func newWithWriter(w io.Writer, level string) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{
		Level: LogLevel(level),
	}

	if strings.EqualFold(level, "debug") {
		handlerOptions.AddSource = true
		handlerOptions.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, ok := a.Value.Any().(*slog.Source)
				if ok {
					directory := filepath.Dir(source.File)
					relativePath := path.Join(filepath.Base(directory), filepath.Base(source.File))
					a.Value = slog.StringValue(relativePath + ":" + strconv.Itoa(source.Line))
				}
			}

			return a
		}
	}

	handler := slog.NewTextHandler(w, handlerOptions)

	return slog.New(
		contextHandler{
			handler, []any{
				RequestIDContextKey,
				CallerContextKey,
			},
		})
}

// LogLevel maps a level name to its slog.Level. Unknown names fall back to info.
func LogLevel(level string) slog.Level {
	if l, ok := logLevels[strings.ToLower(level)]; ok {
		return l
	}

	return slog.LevelInfo
}

func logWriter(logFile string) io.Writer {
	logPath := logFile
	if logFile != "" {
		fileInfo, err := os.Stat(logPath)
		if err == nil && fileInfo.IsDir() {
			logPath = path.Join(logPath, defaultLogFile)
		}

		logFileHandle, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, filePermission)
		if err != nil {
			slog.Error("Failed to open log file, proceeding to log only to stderr", "error", err)

			return os.Stderr
		}

		// Use io.MultiWriter to log to both Stdout and the file
		return io.MultiWriter(os.Stdout, logFileHandle)
	}

	return os.Stderr
}

func (c contextKey) String() string {
	return string(c)
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.observe(ctx)...)
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs), h.keys}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name), h.keys}
}

func (h contextHandler) observe(ctx context.Context) (as []slog.Attr) {
	for _, k := range h.keys {
		a, ok := ctx.Value(k).(slog.Attr)
		if !ok {
			continue
		}
		a.Value = a.Value.Resolve()
		as = append(as, a)
	}

	return as
}

func GenerateRequestID() slog.Attr {
	return slog.String(RequestIDKey, lib.NewID())
}

// WithRequestID returns ctx carrying id as its request id attribute. An empty id is replaced
// by a generated one.
func WithRequestID(ctx context.Context, id string) context.Context {
	attr := slog.String(RequestIDKey, id)
	if id == "" {
		attr = GenerateRequestID()
	}

	return context.WithValue(ctx, RequestIDContextKey, attr)
}

// RequestID returns the request id stored in ctx, or an empty string.
func RequestID(ctx context.Context) string {
	value, ok := ctx.Value(RequestIDContextKey).(slog.Attr)
	if !ok {
		return ""
	}

	return value.Value.String()
}

// WithCaller returns ctx carrying the authenticated caller identity as a log attribute.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, CallerContextKey, slog.String(CallerKey, caller))
}
