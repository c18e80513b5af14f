package lib

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProcessState is the tag of ProcessStatus.
type ProcessState int

const (
	ProcessStateUnspecified ProcessState = iota
	ProcessStateRunning
	ProcessStateExited
	ProcessStateKilled
)

const (
	statusRunning = "running"
	statusDone    = "done"
	statusKilled  = "killed"
)

// ProcessStatus is Running, Exited(code) or Killed. Exited and Killed are terminal.
// ExitCode is meaningful only for ProcessStateExited.
type ProcessStatus struct {
	State    ProcessState
	ExitCode int
}

func Running() ProcessStatus {
	return ProcessStatus{State: ProcessStateRunning}
}

func Exited(code int) ProcessStatus {
	return ProcessStatus{State: ProcessStateExited, ExitCode: code}
}

func Killed() ProcessStatus {
	return ProcessStatus{State: ProcessStateKilled}
}

// Terminal reports whether no further transitions are possible.
func (s ProcessStatus) Terminal() bool {
	return s.State == ProcessStateExited || s.State == ProcessStateKilled
}

// String renders the wire encoding: "running", "done <code>" or "killed".
func (s ProcessStatus) String() string {
	switch s.State {
	case ProcessStateRunning:
		return statusRunning
	case ProcessStateExited:
		return statusDone + " " + strconv.Itoa(s.ExitCode)
	case ProcessStateKilled:
		return statusKilled
	default:
		return "unknown"
	}
}

// ParseProcessStatus is the inverse of ProcessStatus.String.
func ParseProcessStatus(s string) (ProcessStatus, error) {
	switch {
	case s == statusRunning:
		return Running(), nil
	case s == statusKilled:
		return Killed(), nil
	case strings.HasPrefix(s, statusDone+" "):
		code, err := strconv.Atoi(strings.TrimPrefix(s, statusDone+" "))
		if err != nil {
			return ProcessStatus{}, fmt.Errorf("invalid exit code in status %q: %w", s, err)
		}
		return Exited(code), nil
	default:
		return ProcessStatus{}, fmt.Errorf("unknown process status %q", s)
	}
}

// Command captures command metadata used to start a process.
type Command struct {
	// Line is the command as submitted by the client.
	Line    string
	Command string
	Args    []string
}

func (c Command) String() string {
	if c.Line != "" {
		return c.Line
	}
	return strings.TrimSpace(strings.Join(append([]string{c.Command}, c.Args...), " "))
}

// CreateRequest describes a process to launch.
type CreateRequest struct {
	Command Command
	// Owner is the identity of the caller, empty when unauthenticated.
	Owner string
}

// ProcessSummary is a point-in-time view of one supervised process.
// Log is empty unless the full log was explicitly requested.
type ProcessSummary struct {
	ID        string
	Command   Command
	Status    ProcessStatus
	Log       string
	Pid       int
	Owner     string
	StartTime time.Time
	EndTime   *time.Time
}
