// Package v1 holds the wire types of the process runner API. The same structs are the JSON
// bodies of the HTTP API and the messages of the gRPC service.
package v1

import (
	"time"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
)

type (
	Process struct {
		UUID   string `json:"uuid"`
		Cmd    string `json:"cmd"`
		Status string `json:"status"`
		// Log is empty in listings.
		Log       string     `json:"log"`
		Pid       int        `json:"pid,omitempty"`
		Owner     string     `json:"owner,omitempty"`
		StartedAt time.Time  `json:"started_at"`
		EndedAt   *time.Time `json:"ended_at,omitempty"`
	}

	CreateProcessRequest struct {
		Cmd  string   `json:"cmd" binding:"required"`
		Args []string `json:"args,omitempty"`
	}

	ErrorResponse struct {
		Message string `json:"message,omitempty"`
	}

	ListProcessesRequest struct{}

	ListProcessesResponse struct {
		Processes []Process `json:"processes"`
	}

	GetProcessRequest struct {
		UUID string `json:"uuid"`
	}

	LiveLogRequest struct {
		UUID string `json:"uuid"`
	}

	LiveLogResponse struct {
		Line string `json:"line"`
	}

	DeleteProcessRequest struct {
		UUID string `json:"uuid"`
	}

	DeleteProcessResponse struct{}
)

func FromSummary(summary *lib.ProcessSummary) *Process {
	process := &Process{
		UUID:      summary.ID,
		Cmd:       summary.Command.String(),
		Status:    summary.Status.String(),
		Log:       summary.Log,
		Pid:       summary.Pid,
		Owner:     summary.Owner,
		StartedAt: summary.StartTime,
	}
	if summary.EndTime != nil {
		t := *summary.EndTime
		process.EndedAt = &t
	}

	return process
}
