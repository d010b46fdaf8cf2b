// Package sink provides the message handlers the harness ships with: a
// summary sink that aggregates results and enforces a failure budget, and a
// forwarder that streams every lifecycle event to a remote socket.io
// observer.
//
// Sinks attach themselves to a dispatcher by registering bindings; they hold
// no reference to the dispatcher afterwards. A sink's boolean return follows
// the dispatch contract: true means "keep going", false is an advisory stop
// aggregated with every other handler's vote.
package sink
