// Package gate serializes the check-and-commit critical section per
// assignment.
//
// Two submissions for the same assignment must never be screened against
// the same corpus snapshot concurrently: both could pass the threshold
// and both commit. The gate guarantees at most one in-flight
// evaluate+commit per assignment id while leaving different assignments
// fully concurrent.
package gate

import (
	"context"
	"fmt"
	"sync"
)

// lock is the per-assignment slot. The channel acts as a mutex with
// context support; refs counts holders plus waiters so idle entries can
// be dropped from the map.
type lock struct {
	ch   chan struct{}
	refs int
}

// Gate hands out per-assignment critical sections.
type Gate struct {
	mu    sync.Mutex
	locks map[string]*lock
}

// New creates an empty Gate.
func New() *Gate {
	return &Gate{
		locks: make(map[string]*lock),
	}
}

// Acquire blocks until the caller holds the assignment's slot or ctx is
// canceled. On success the returned release function must be called
// exactly once.
func (g *Gate) Acquire(ctx context.Context, assignmentID string) (func(), error) {
	g.mu.Lock()
	l, ok := g.locks[assignmentID]
	if !ok {
		l = &lock{ch: make(chan struct{}, 1)}
		g.locks[assignmentID] = l
	}
	l.refs++
	g.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		var once sync.Once
		release := func() {
			once.Do(func() {
				<-l.ch
				g.drop(assignmentID, l)
			})
		}
		return release, nil
	case <-ctx.Done():
		g.drop(assignmentID, l)
		return nil, fmt.Errorf("acquire gate for assignment %s: %w", assignmentID, ctx.Err())
	}
}

// drop releases one reference and evicts the entry when idle.
func (g *Gate) drop(assignmentID string, l *lock) {
	g.mu.Lock()
	defer g.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(g.locks, assignmentID)
	}
}

// Size returns the number of assignments with held or contended slots.
func (g *Gate) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.locks)
}
