package core

// run_guard.go keeps runs on one Seeder strictly sequential.
//
// A second Run started while one is in flight fails fast with
// ErrRunInProgress instead of queueing: the in-flight run already
// replaces the whole catalog, so a queued one would only repeat it.

import (
	"errors"
	"sync"
)

// ErrRunInProgress is returned by Seeder.Run when another run on the same
// Seeder has not finished.
var ErrRunInProgress = errors.New("a seeding run is already in progress")

// runGuard is a single-slot semaphore remembering which run holds it.
type runGuard struct {
	slot chan struct{}

	mu      sync.Mutex
	current string
}

func newRunGuard() *runGuard {
	return &runGuard{slot: make(chan struct{}, 1)}
}

// tryAcquire takes the slot for runID without blocking. On failure it
// returns the run ID holding the slot.
func (g *runGuard) tryAcquire(runID string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case g.slot <- struct{}{}:
		g.current = runID
		return runID, true
	default:
		return g.current, false
	}
}

// release frees the slot. Must be called exactly once per successful tryAcquire.
func (g *runGuard) release() {
	g.mu.Lock()
	g.current = ""
	g.mu.Unlock()

	<-g.slot
}
