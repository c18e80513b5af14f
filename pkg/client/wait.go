package client

import (
	"context"
	"errors"
	"time"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/cenkalti/backoff/v4"
)

const (
	Jitter     = 0.10
	Multiplier = backoff.DefaultMultiplier
)

var errStillRunning = errors.New("process is still running")

type BackoffSettings struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime of zero waits until ctx ends.
	MaxElapsedTime time.Duration
	Multiplier     float64
	Jitter         float64
}

func DefaultBackoffSettings() *BackoffSettings {
	return &BackoffSettings{
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      Multiplier,
		Jitter:          Jitter,
	}
}

// WaitForExit polls the process with exponential backoff until its status is terminal and
// returns the final state, full log included.
func WaitForExit(ctx context.Context, c Client, id string, settings *BackoffSettings) (*v1.Process, error) {
	if settings == nil {
		settings = DefaultBackoffSettings()
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = settings.InitialInterval
	eb.MaxInterval = settings.MaxInterval
	eb.MaxElapsedTime = settings.MaxElapsedTime
	eb.RandomizationFactor = settings.Jitter
	eb.Multiplier = settings.Multiplier

	var process *v1.Process
	operation := func() error {
		p, err := c.Get(ctx, id)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if err != nil {
			return backoff.Permanent(err)
		}

		status, err := lib.ParseProcessStatus(p.Status)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !status.Terminal() {
			return errStillRunning
		}

		process = p
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(eb, ctx)); err != nil {
		return nil, err
	}

	return process, nil
}
