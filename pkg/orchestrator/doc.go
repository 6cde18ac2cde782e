// Package orchestrator wires document loading, form evaluation and rendering
// into a single Generate call for consumers that want one entry point.
package orchestrator
