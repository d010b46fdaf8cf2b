// Package app wires the harness together: logger construction, manifest
// loading, trait registry population, and the two run modes (manifest
// inspection and event routing). It owns no domain logic of its own.
package app
