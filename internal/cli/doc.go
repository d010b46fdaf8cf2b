// Package cli translates command-line arguments into an app.Config, owning
// the flag surface, usage text, and argument validation.
package cli
