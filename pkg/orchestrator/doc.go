// Package orchestrator wires the loader → extractor → optionality analyzer →
// planner → renderer pipeline, providing dependency injection friendly
// helpers for consumers that prefer a single entry point.
package orchestrator
