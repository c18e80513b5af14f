package runner

import (
	"bufio"
	"errors"
	"io"
	"os/exec"
	"time"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
)

const initialLineBuffer = 4096

// collect is the output collector of one process and the only writer of its record.
// It drains stdout line by line, then waits for the process and resolves its status.
func (runner *Runner) collect(processEntry *processEntry, stdout io.Reader) {
	defer runner.collectors.Done()

	logger := runner.logger.With("id", processEntry.id, "pid", processEntry.pid)
	logger.Debug("Collecting process output")

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, min(initialLineBuffer, runner.settings.MaxLineBytes)), runner.settings.MaxLineBytes)
	for scanner.Scan() {
		processEntry.appendLine(scanner.Text() + "\n")
	}

	if err := scanner.Err(); err != nil {
		logger.Warn("Stopped collecting process output", "error", &lib.ReadError{ID: processEntry.id, Err: err})
		// keep the pipe drained so the child never blocks on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
	}

	err := processEntry.cmd.Wait()
	status := exitStatus(err)
	if processEntry.resolve(status, time.Now()) {
		logger.Info("Process finished", "status", status.String())
	}
}

func exitStatus(err error) lib.ProcessStatus {
	if err == nil {
		return lib.Exited(0)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process was terminated by a signal
		if code := exitErr.ExitCode(); code >= 0 {
			return lib.Exited(code)
		}
	}

	return lib.Killed()
}
