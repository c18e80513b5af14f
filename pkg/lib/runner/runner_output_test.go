package runner

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll collects all lines from a subscription until it closes.
func readAll(t *testing.T, sub *Subscription) string {
	t.Helper()

	var out strings.Builder
	timeout := time.After(waitFor)
	for {
		select {
		case line, ok := <-sub.Lines():
			if !ok {
				return out.String()
			}
			out.WriteString(line)
		case <-timeout:
			t.Errorf("subscription did not end in time, got %q", out.String())
			return out.String()
		}
	}
}

func TestSubscribe_MultipleSubscribers(t *testing.T) {
	r := newTestRunner(t, DefaultSettings())

	// Leave time for both subscribers to attach before the first line
	created := create(t, r, "sh -c 'sleep 0.2; for i in 1 2 3 4 5; do echo $i; sleep 0.03; done'")

	sub1, err := r.Subscribe(created.ID)
	require.NoError(t, err)
	defer sub1.Close()
	sub2, err := r.Subscribe(created.ID)
	require.NoError(t, err)
	defer sub2.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	var s1, s2 string
	go func() { defer wg.Done(); s1 = readAll(t, sub1) }()
	go func() { defer wg.Done(); s2 = readAll(t, sub2) }()
	wg.Wait()

	expected := "1\n2\n3\n4\n5\n"
	assert.Equal(t, expected, s1)
	assert.Equal(t, expected, s2)

	summary := waitForTerminal(t, r, created.ID)
	assert.Equal(t, expected, summary.Log)
}

func TestSubscribe_LateSubscriberGetsNoBacklog(t *testing.T) {
	r := newTestRunner(t, DefaultSettings())

	created := create(t, r, "sh -c 'echo first; sleep 0.3; echo second'")

	require.Eventually(t, func() bool {
		summary, err := r.Get(created.ID)
		return err == nil && summary.Log == "first\n"
	}, waitFor, tick)

	sub, err := r.Subscribe(created.ID)
	require.NoError(t, err)
	defer sub.Close()

	assert.Equal(t, "second\n", readAll(t, sub))
}

func TestSubscribe_FinishedProcessEndsImmediately(t *testing.T) {
	r := newTestRunner(t, DefaultSettings())

	created := create(t, r, "echo hello")
	waitForTerminal(t, r, created.ID)

	sub, err := r.Subscribe(created.ID)
	require.NoError(t, err)
	defer sub.Close()

	assert.Empty(t, readAll(t, sub))
}

func TestSubscribe_NotFound(t *testing.T) {
	r := newTestRunner(t, DefaultSettings())

	_, err := r.Subscribe("missing")
	require.ErrorIs(t, err, lib.ErrNotFound)
}

func TestSubscribe_CloseDoesNotAffectOthers(t *testing.T) {
	r := newTestRunner(t, DefaultSettings())

	created := create(t, r, "sh -c 'sleep 0.2; echo one; sleep 0.1; echo two'")

	leaving, err := r.Subscribe(created.ID)
	require.NoError(t, err)
	staying, err := r.Subscribe(created.ID)
	require.NoError(t, err)
	defer staying.Close()

	leaving.Close()
	leaving.Close()

	_, ok := <-leaving.Lines()
	assert.False(t, ok)

	assert.Equal(t, "one\ntwo\n", readAll(t, staying))

	summary := waitForTerminal(t, r, created.ID)
	assert.Equal(t, lib.Exited(0), summary.Status)
	assert.Equal(t, "one\ntwo\n", summary.Log)
}

func TestSubscribe_SlowSubscriberSeesOrderedSubset(t *testing.T) {
	settings := DefaultSettings()
	settings.LiveBufferSize = 4
	r := newTestRunner(t, settings)

	created := create(t, r, "sh -c 'sleep 0.2; i=1; while [ $i -le 200 ]; do echo $i; i=$((i+1)); done'")

	sub, err := r.Subscribe(created.ID)
	require.NoError(t, err)
	defer sub.Close()

	var received []string
	for line := range sub.Lines() {
		received = append(received, line)
		time.Sleep(time.Millisecond)
	}

	summary := waitForTerminal(t, r, created.ID)
	logLines := strings.SplitAfter(summary.Log, "\n")
	logLines = logLines[:len(logLines)-1]
	require.Len(t, logLines, 200)

	// every received line appears in the log, in the same order
	next := 0
	for _, line := range received {
		for next < len(logLines) && logLines[next] != line {
			next++
		}
		require.Less(t, next, len(logLines), "line %q is missing or out of order", line)
		next++
	}
	assert.NotEmpty(t, received)
	assert.Equal(t, "200\n", received[len(received)-1])
}
