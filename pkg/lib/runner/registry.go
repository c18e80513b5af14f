package runner

import (
	"sort"
	"sync"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
)

// registry maps process identifiers to records. Its lock guards membership only;
// record contents are guarded by each record's own lock.
type registry struct {
	mu        sync.RWMutex
	processes map[string]*processEntry
}

func newRegistry() *registry {
	return &registry{processes: make(map[string]*processEntry)}
}

// Insert adds a record under a fresh id. An id that is already present is left untouched
// and false is returned.
func (r *registry) Insert(id string, pe *processEntry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processes[id]; exists {
		return false
	}
	r.processes[id] = pe

	return true
}

func (r *registry) Get(id string) (*processEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pe, ok := r.processes[id]

	return pe, ok
}

// Remove detaches the record. It does not stop the process.
func (r *registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.processes[id]; !ok {
		return false
	}
	delete(r.processes, id)

	return true
}

func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.processes)
}

func (r *registry) entries() []*processEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*processEntry, 0, len(r.processes))
	for _, pe := range r.processes {
		entries = append(entries, pe)
	}

	return entries
}

// Snapshot returns id, command and status of every record, oldest first. The registry
// lock is released before any record lock is taken.
func (r *registry) Snapshot() []lib.ProcessSummary {
	entries := r.entries()

	summaries := make([]lib.ProcessSummary, 0, len(entries))
	for _, pe := range entries {
		summaries = append(summaries, pe.lockAndGetSummary(false))
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].StartTime.Equal(summaries[j].StartTime) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].StartTime.Before(summaries[j].StartTime)
	})

	return summaries
}
