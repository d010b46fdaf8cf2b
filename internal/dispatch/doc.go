// Package dispatch routes lifecycle messages to registered handlers without
// per-call type inspection beyond a single cached table lookup.
//
// Handlers bind against a variant type: either a concrete message pointer
// type or one of the cross-cutting interfaces from internal/event. On the
// first dispatch of each concrete message type the dispatcher scans its fixed
// binding list, in registration order, and caches the ordered sub-list of
// bindings that type satisfies. One message may satisfy several bindings at
// once (a *event.TestFailed matches bindings on *event.TestFailed,
// event.CaseMessage and event.FailureMessage); every match is preserved.
//
// Dispatch runs the whole table without short-circuiting and returns the
// logical AND of the handler results; false is an advisory "stop" signal for
// the caller to act on, nothing is cancelled here. An empty table returns
// true.
//
// The Completion type wraps a dispatcher with a one-shot gate signalled by a
// designated terminal variant, giving external callers a time-bounded wait
// for end-of-run. The gate must not be awaited from a goroutine that is
// itself dispatching, or it will deadlock against itself.
//
// All bindings must be registered before the first dispatch; the binding list
// and per-type tables are immutable afterwards, which is what makes the
// caches safe to share across goroutines.
package dispatch
