package dispatch

import (
	"reflect"
	"time"

	"github.com/vk/harnessgo/internal/event"
)

// Completion wraps a Dispatcher and signals a one-shot gate once the
// designated terminal message variant has been dispatched.
type Completion struct {
	d        *Dispatcher
	terminal reflect.Type
	gate     *Gate
}

// NewCompletion wraps d, designating the concrete variant T as the terminal
// message of a run.
func NewCompletion[T event.Message](d *Dispatcher) *Completion {
	return &Completion{
		d:        d,
		terminal: reflect.TypeFor[T](),
		gate:     NewGate(),
	}
}

// OnMessage dispatches the message through the wrapped dispatcher, then
// signals the gate if the message's concrete type is the terminal variant.
// The handler table runs to completion before the gate is touched, so a
// waiter released by the gate observes every terminal-message side effect.
func (c *Completion) OnMessage(msg event.Message) bool {
	ok := c.d.Dispatch(msg)
	if reflect.TypeOf(msg) == c.terminal {
		c.gate.Signal()
	}
	return ok
}

// Wait blocks until the terminal variant has been dispatched or the timeout
// elapses, returning true if completion was observed. A non-positive timeout
// waits indefinitely.
func (c *Completion) Wait(timeout time.Duration) bool {
	return c.gate.Wait(timeout)
}

// Finished reports, without blocking, whether the terminal variant has been
// dispatched.
func (c *Completion) Finished() bool {
	return c.gate.Signaled()
}

// Close releases any goroutines blocked in Wait. Intended for teardown paths
// where the terminal message will never arrive; closing an already signaled
// completion is a no-op.
func (c *Completion) Close() {
	c.gate.Signal()
}
