// Package collectors defines the contract between statistics sources and
// the banner controller. A Source turns a username into one normalized
// stats.Record; sub-packages (pkg/collectors/github) implement it against
// real services.
package collectors

import (
	"context"
	"errors"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
)

// ErrUserNotFound is the only failure a Source reports: the profile could
// not be retrieved, either because it does not exist or because the request
// itself failed.
var ErrUserNotFound = errors.New("user not found")

// ErrSubFetchDegraded marks a secondary request that failed and was
// replaced by zero values. Sources log it and never return it.
var ErrSubFetchDegraded = errors.New("sub-fetch degraded")

// Source produces statistics for a username.
type Source interface {
	// Name returns a unique identifier for this source (e.g., "github").
	Name() string

	// Fetch retrieves and normalizes the statistics of username. On failure
	// the error satisfies errors.Is(err, ErrUserNotFound).
	Fetch(ctx context.Context, username string) (stats.Record, error)
}

// Status tracks the runtime state of a source across fetches.
type Status struct {
	Name        string
	Healthy     bool
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}

// Tracked wraps a Source and records a Status for every fetch.
type Tracked struct {
	src Source
	now func() time.Time

	mu     sync.RWMutex
	status Status
}

// Track wraps src.
func Track(src Source) *Tracked {
	return &Tracked{
		src:    src,
		now:    time.Now,
		status: Status{Name: src.Name(), Healthy: true},
	}
}

// Name returns the wrapped source's name.
func (t *Tracked) Name() string { return t.src.Name() }

// Fetch delegates to the wrapped source and updates the status.
func (t *Tracked) Fetch(ctx context.Context, username string) (stats.Record, error) {
	start := t.now()
	rec, err := t.src.Fetch(ctx, username)
	elapsed := t.now().Sub(start)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.LastRun = start
	t.status.LastLatency = elapsed
	t.status.RunCount++
	t.status.LastError = err
	t.status.Healthy = err == nil
	if err != nil {
		t.status.ErrorCount++
	}
	return rec, err
}

// Status returns a copy of the current status.
func (t *Tracked) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}
