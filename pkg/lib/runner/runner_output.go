package runner

import "sync"

// Subscription is a live view of a process's output. It only carries lines produced after
// it was created and ends when the process finishes or Close is called.
type Subscription struct {
	lines   <-chan string
	once    sync.Once
	release func()
}

// Lines is closed when the stream ends.
func (s *Subscription) Lines() <-chan string {
	return s.lines
}

// Close releases the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.release)
}

// Subscribe attaches a live subscriber to the output of a process.
func (runner *Runner) Subscribe(id string) (*Subscription, error) {
	pe, err := runner.getProcess(id)
	if err != nil {
		return nil, err
	}

	ch := pe.subscribe()
	runner.logger.Debug("Subscribed to process output", "id", id)

	return &Subscription{
		lines:   ch,
		release: func() { pe.live.Unsubscribe(ch) },
	}, nil
}
