// Package handler provides the built-in request handlers: a math handler
// backed by the calculator tools, a text handler backed by the text analysis
// tools, and a coordinator that serves as the routing fallback for requests
// no specialized handler claims.
//
// Each specialized handler exposes an Affinity describing its scoring policy
// so callers can register it with a router without hard-coding weights.
package handler
