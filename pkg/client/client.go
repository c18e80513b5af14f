// Package client talks to a process runner server over its HTTP or gRPC API.
package client

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
)

// Client is implemented by both transports.
type Client interface {
	List(ctx context.Context) ([]v1.Process, error)
	// Create starts cmd. With no args, cmd is split using shell word rules by the server.
	Create(ctx context.Context, cmd string, args []string) (*v1.Process, error)
	Get(ctx context.Context, id string) (*v1.Process, error)
	// LiveLog calls fn for every output line until the process finishes, ctx ends or fn fails.
	LiveLog(ctx context.Context, id string, fn func(line string) error) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// ResponseError is an error reported by the server. It matches the pkg/lib sentinel errors
// with errors.Is where the status maps to one.
type ResponseError struct {
	Status  string
	Message string
	kind    error
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func (e *ResponseError) Unwrap() error { return e.kind }

// IsPermissionDenied reports whether the server refused access to another owner's process.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, lib.ErrPermissionDenied)
}
