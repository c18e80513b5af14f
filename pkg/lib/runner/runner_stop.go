package runner

import (
	"context"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
)

// Delete kills the process if it is still running and removes it from the registry.
// Killing an exited process is a no-op. When the kill fails the record is kept so the
// caller may retry.
func (runner *Runner) Delete(ctx context.Context, id string) error {
	pe, err := runner.getProcess(id)
	if err != nil {
		return err
	}

	if !pe.lockAndGetStatus().Terminal() {
		if err := runner.kill(pe.pid); err != nil {
			runner.logger.WarnContext(ctx, "Failed to kill process", "id", id, "pid", pe.pid, "error", err)
			return &lib.KillError{ID: id, Err: err}
		}
	}

	runner.registry.Remove(id)
	runner.logger.InfoContext(ctx, "Deleted process", "id", id, "pid", pe.pid)

	return nil
}

// Shutdown refuses new processes, kills every registered one that is still running and
// waits for all output collectors to finish or for ctx to end.
func (runner *Runner) Shutdown(ctx context.Context) error {
	runner.lifecycle.Lock()
	runner.closed = true
	runner.lifecycle.Unlock()

	for _, pe := range runner.registry.entries() {
		if pe.lockAndGetStatus().Terminal() {
			continue
		}
		if err := runner.kill(pe.pid); err != nil {
			runner.logger.WarnContext(ctx, "Failed to kill process on shutdown", "id", pe.id, "pid", pe.pid, "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		runner.collectors.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
