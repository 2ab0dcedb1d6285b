// Package executor runs decomposed request steps against a router and turns
// the per-step outcomes into an aggregated report.
//
// Failures are isolated per step: a handler error, a panic, or a step with
// no matching handler never aborts the remaining steps. Only specialized
// handlers are consulted for steps; the routing fallback is reserved for
// whole requests.
package executor
