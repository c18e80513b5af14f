package runner

import (
	"context"
	"os/exec"
	"time"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/broadcast"
)

// Create spawns the requested command and registers it. It returns as soon as the process
// exists; output collection continues in the background.
func (runner *Runner) Create(ctx context.Context, request lib.CreateRequest) (*lib.ProcessSummary, error) {
	command := request.Command
	if command.Command == "" {
		return nil, lib.ErrInvalidCommand
	}

	runner.lifecycle.RLock()
	defer runner.lifecycle.RUnlock()
	if runner.closed {
		return nil, ErrClosed
	}

	cmd := exec.Command(command.Command, command.Args...)
	cmd.Dir = runner.settings.WorkDir
	cmd.SysProcAttr = sysProcAttr()

	// cmd.Stdin is left nil, so it will use /dev/null
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &lib.SpawnError{Command: command, Err: err}
	}
	if runner.settings.MergeStderr {
		cmd.Stderr = cmd.Stdout
	}

	if err := cmd.Start(); err != nil {
		runner.logger.WarnContext(ctx, "Failed to start process", "command", command.String(), "error", err)
		return nil, &lib.SpawnError{Command: command, Err: err}
	}

	processEntry := &processEntry{
		id:      lib.NewID(),
		command: command,
		owner:   request.Owner,
		cmd:     cmd,
		pid:     cmd.Process.Pid,
		start:   time.Now(),
		status:  lib.Running(),
		live:    broadcast.NewBroadcaster[string](runner.settings.LiveBufferSize),
	}

	for !runner.registry.Insert(processEntry.id, processEntry) {
		processEntry.id = lib.NewID()
	}

	runner.collectors.Add(1)
	go runner.collect(processEntry, stdout)

	runner.logger.InfoContext(ctx, "Started process",
		"id", processEntry.id, "pid", processEntry.pid, "command", command.String())

	return &lib.ProcessSummary{
		ID:        processEntry.id,
		Command:   command,
		Status:    lib.Running(),
		Pid:       processEntry.pid,
		Owner:     processEntry.owner,
		StartTime: processEntry.start,
	}, nil
}
