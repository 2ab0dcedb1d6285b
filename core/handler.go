package core

import "context"

// Handler is the contract every request handler must satisfy. Handlers are
// registered once at startup and the registry is read-only afterwards, so
// implementations only need to be safe for concurrent Process calls.
//
// CanHandle must be side-effect free and fast; it is evaluated for every
// request during scoring. Process may block (it can wrap an I/O bound tool
// call) and must report failures through the returned Outcome rather than
// panicking: a panic at the invocation boundary is recovered by the executor
// and demoted to a failed step, but it is never the intended error path.
type Handler interface {
	// Name returns the unique handler identifier.
	Name() string

	// Description returns a human-readable summary of the handler's purpose.
	Description() string

	// CanHandle reports whether this handler can process the request.
	CanHandle(req Request) bool

	// Process handles the request and returns the outcome. Business-logic
	// failures are returned as data (Outcome.Success == false), never as
	// panics.
	Process(ctx context.Context, req Request) Outcome
}

// HandlerInfo carries identifying details about a registered handler for
// status reporting and coordinator responses.
type HandlerInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
