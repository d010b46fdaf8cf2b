package dispatch

import (
	"context"
	"sync"
	"time"
)

// Gate is a one-shot cross-goroutine completion signal. It transitions from
// armed to signaled exactly once and never resets; further signals are
// ignored.
type Gate struct {
	once sync.Once
	done chan struct{}
}

// NewGate returns an armed gate.
func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Signal moves the gate to its signaled state. Safe to call from any number
// of goroutines; only the first call has an effect.
func (g *Gate) Signal() {
	g.once.Do(func() { close(g.done) })
}

// Signaled reports whether the gate has been signaled, without blocking.
func (g *Gate) Signaled() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the gate is signaled or the timeout elapses, returning
// true if the gate was signaled. A non-positive timeout waits indefinitely.
// Wait must not be called from a goroutine that is performing the dispatch
// expected to signal the gate.
func (g *Gate) Wait(timeout time.Duration) bool {
	if timeout <= 0 {
		<-g.done
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-g.done:
		return true
	case <-timer.C:
		return false
	}
}

// WaitContext blocks until the gate is signaled or the context is done,
// returning true if the gate was signaled.
func (g *Gate) WaitContext(ctx context.Context) bool {
	select {
	case <-g.done:
		return true
	case <-ctx.Done():
		return false
	}
}
