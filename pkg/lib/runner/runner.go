package runner

import (
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/broadcast"
)

const DefaultMaxLineBytes = 1024 * 1024

// ErrClosed is returned by Create once Shutdown has started.
var ErrClosed = errors.New("runner is shutting down")

// Settings tune how processes are spawned and how their output is collected.
type Settings struct {
	// LiveBufferSize is the number of lines a live subscriber may lag before old lines are dropped.
	LiveBufferSize int
	// MaxLineBytes bounds a single output line; a longer line stops output collection.
	MaxLineBytes int
	// MergeStderr sends the child's stderr into the same pipe as stdout.
	MergeStderr bool
	// WorkDir is the working directory of spawned processes, the server's own when empty.
	WorkDir string
}

func DefaultSettings() Settings {
	return Settings{
		LiveBufferSize: broadcast.DefaultCapacity,
		MaxLineBytes:   DefaultMaxLineBytes,
	}
}

// Runner manages processes started by this library.
type Runner struct {
	registry *registry
	settings Settings
	logger   *slog.Logger

	// kill terminates the process group led by pid; swapped in tests.
	kill func(pid int) error

	lifecycle  sync.RWMutex
	closed     bool
	collectors sync.WaitGroup
}

// processEntry is the record of one launched process. Fields above mu are immutable after
// creation. Fields below mu are written only by the output collector of this process.
type processEntry struct {
	id      string
	command lib.Command
	owner   string
	cmd     *exec.Cmd
	pid     int
	start   time.Time

	mu     sync.RWMutex
	status lib.ProcessStatus
	lines  []string
	end    *time.Time
	live   *broadcast.Broadcaster[string]
}

// NewRunner creates a new Runner. A nil logger discards all output.
func NewRunner(logger *slog.Logger, settings Settings) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if settings.LiveBufferSize <= 0 {
		settings.LiveBufferSize = broadcast.DefaultCapacity
	}
	if settings.MaxLineBytes <= 0 {
		settings.MaxLineBytes = DefaultMaxLineBytes
	}

	return &Runner{
		registry: newRegistry(),
		settings: settings,
		logger:   logger,
		kill:     killProcessGroup,
	}
}

// appendLine records one output line and offers it to live subscribers in the same
// critical section, so subscribers and the buffer agree on order.
func (processEntry *processEntry) appendLine(line string) {
	processEntry.mu.Lock()
	defer processEntry.mu.Unlock()

	processEntry.lines = append(processEntry.lines, line)
	processEntry.live.Publish(line)
}

// resolve moves the record to a terminal status and ends all live streams.
// It reports false, changing nothing, if the status was already terminal.
func (processEntry *processEntry) resolve(status lib.ProcessStatus, end time.Time) bool {
	processEntry.mu.Lock()
	defer processEntry.mu.Unlock()

	if processEntry.status.Terminal() || !status.Terminal() {
		return false
	}
	processEntry.status = status
	processEntry.end = &end
	processEntry.live.Stop()

	return true
}

func (processEntry *processEntry) subscribe() <-chan string {
	processEntry.mu.RLock()
	defer processEntry.mu.RUnlock()

	return processEntry.live.Subscribe()
}

func (processEntry *processEntry) lockAndGetStatus() lib.ProcessStatus {
	processEntry.mu.RLock()
	defer processEntry.mu.RUnlock()

	return processEntry.status
}

func (processEntry *processEntry) lockAndGetSummary(withLog bool) lib.ProcessSummary {
	processEntry.mu.RLock()
	defer processEntry.mu.RUnlock()

	summary := lib.ProcessSummary{
		ID:        processEntry.id,
		Command:   processEntry.command,
		Status:    processEntry.status,
		Pid:       processEntry.pid,
		Owner:     processEntry.owner,
		StartTime: processEntry.start,
	}
	if processEntry.end != nil {
		t := *processEntry.end
		summary.EndTime = &t
	}
	if withLog {
		summary.Log = strings.Join(processEntry.lines, "")
	}

	return summary
}
