package lib

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound is returned for unknown process identifiers. It matches os.ErrNotExist.
	ErrNotFound = fmt.Errorf("process not found: %w", os.ErrNotExist)

	ErrInvalidCommand   = errors.New("command is required")
	ErrPermissionDenied = errors.New("only the creator can access the process")
)

// SpawnError is returned when the OS refuses to start a process. Nothing is registered.
type SpawnError struct {
	Command Command
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Command.String(), e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// KillError is returned when the termination signal could not be delivered.
// The record stays registered so the caller may retry.
type KillError struct {
	ID  string
	Err error
}

func (e *KillError) Error() string {
	return fmt.Sprintf("failed to kill process %s: %v", e.ID, e.Err)
}

func (e *KillError) Unwrap() error { return e.Err }

// ReadError is a failure while draining a process's output. It never reaches a caller;
// the collector logs it and stops recording further lines.
type ReadError struct {
	ID  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read output of process %s: %v", e.ID, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
