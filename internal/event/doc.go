// Package event defines the closed set of lifecycle messages emitted while a
// test run is discovered and executed, plus the small cross-cutting
// interfaces that group related variants.
//
// Every variant is pure data: a struct with exported, JSON-tagged fields and
// a Kind method identifying its shape on the wire. Producing these messages
// is the runner's job; this package only defines the shapes so that
// dispatching (internal/dispatch) and replay (internal/replay) can route them
// without inventing their own vocabulary.
//
// The set is deliberately closed. Adding a variant means adding a struct
// here, a decode arm in internal/replay, and (usually) a binding in whichever
// sinks care about it. Code that needs to handle "any failure" or "any
// per-case message" should bind against the FailureMessage or CaseMessage
// interfaces rather than enumerating concrete types, since a single concrete
// message may satisfy several of those interfaces at once.
package event
