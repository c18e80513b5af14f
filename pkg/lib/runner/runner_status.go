package runner

import (
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
)

// List returns id, command and status of every registered process. Logs are omitted.
func (runner *Runner) List() []lib.ProcessSummary {
	return runner.registry.Snapshot()
}

// Status returns the current process and status by identifier, without its log.
func (runner *Runner) Status(id string) (*lib.ProcessSummary, error) {
	pe, err := runner.getProcess(id)
	if err != nil {
		return nil, err
	}

	summary := pe.lockAndGetSummary(false)

	return &summary, nil
}

// Get returns the current status and the full buffered log of one process.
func (runner *Runner) Get(id string) (*lib.ProcessSummary, error) {
	pe, err := runner.getProcess(id)
	if err != nil {
		return nil, err
	}

	summary := pe.lockAndGetSummary(true)

	return &summary, nil
}

func (runner *Runner) getProcess(id string) (*processEntry, error) {
	pe, ok := runner.registry.Get(id)
	if !ok {
		return nil, lib.ErrNotFound
	}
	return pe, nil
}
