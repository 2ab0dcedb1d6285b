// Package engine ties routing, decomposition and execution together into a
// single Dispatch entry point.
//
// A request takes one of three paths: direct delegation when a specialized
// handler matches a single-step request, fallback handling when nothing
// matches a single-step request, and decomposed multi-step execution for
// composite requests. Every path terminates with a result; failures surface
// as data, never as panics.
package engine
