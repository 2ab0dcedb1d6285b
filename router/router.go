// Package router implements capability scoring and handler selection.
//
// The router owns the registration-ordered handler registry and picks the
// single best specialized handler for a request, or signals ErrNoHandler when
// nothing matches. A designated fallback handler sits outside normal scoring
// (two-tier structure): specialized handlers are scored first and the
// fallback is only consulted by the engine when no specialized handler
// matches at all. This keeps the catch-all from starving specialized
// handlers of traffic.
package router

import (
	"errors"
	"fmt"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/logging"
)

// ErrNoHandler signals that every specialized handler scored 0 for a
// request. It is a routing outcome that triggers decomposition or fallback
// handling, not an error condition.
var ErrNoHandler = errors.New("no specialized handler matched the request")

// entry binds a registered handler to its scoring policy, preserving
// registration order for deterministic tie-breaking.
type entry struct {
	handler  core.Handler
	affinity Affinity
}

// Options configures a Router.
type Options struct {
	// Logger receives scoring diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Router scores registered handlers against incoming requests and selects
// the best match. Registration happens once at startup; afterwards the
// registry is read-only, so Select is safe for concurrent use without
// locking on the read path.
type Router struct {
	entries  []entry
	fallback core.Handler
	logger   logging.Logger
}

// New constructs an empty Router.
func New(optFns ...func(o *Options)) *Router {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{logger: opts.Logger}
}

// Register adds a specialized handler with its scoring policy. Handlers are
// consulted in registration order on score ties, so registration order is
// part of the routing contract. Duplicate names are rejected.
func (r *Router) Register(h core.Handler, affinity Affinity) error {
	if h == nil {
		return errors.New("handler must not be nil")
	}
	for _, e := range r.entries {
		if e.handler.Name() == h.Name() {
			return fmt.Errorf("handler %q already registered", h.Name())
		}
	}
	r.entries = append(r.entries, entry{handler: h, affinity: affinity})
	r.logger.Debug("handler registered", "handler", h.Name())
	return nil
}

// SetFallback designates the coordinator/fallback handler. The fallback is
// excluded from scoring and only consulted explicitly by the engine.
func (r *Router) SetFallback(h core.Handler) {
	r.fallback = h
}

// Fallback returns the designated fallback handler, or nil if unset.
func (r *Router) Fallback() core.Handler { return r.fallback }

// Select scores every specialized handler whose predicate matches and
// returns the one with the maximum score. Ties are broken by registration
// order (first registered wins), which together with the pure scoring
// function makes routing fully deterministic. Returns ErrNoHandler when
// every handler scores 0.
func (r *Router) Select(req core.Request) (core.Handler, float64, error) {
	var (
		best      core.Handler
		bestScore float64
	)
	for _, e := range r.entries {
		score := r.score(req, e)
		r.logger.Debug("handler scored", "handler", e.handler.Name(), "score", score)
		if score > bestScore {
			best = e.handler
			bestScore = score
		}
	}
	if best == nil {
		return nil, 0, ErrNoHandler
	}
	return best, bestScore, nil
}

// score evaluates one handler: 0 when the predicate does not match, the
// affinity score otherwise. A panicking predicate is treated as score 0 and
// logged rather than aborting routing.
func (r *Router) score(req core.Request, e entry) (score float64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("handler predicate panicked", "handler", e.handler.Name(), "panic", fmt.Sprintf("%v", rec))
			score = 0
		}
	}()
	if !e.handler.CanHandle(req) {
		return 0
	}
	return e.affinity.Score(req.Text())
}

// Handlers returns registered specialized handlers in registration order.
func (r *Router) Handlers() []core.Handler {
	out := make([]core.Handler, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.handler
	}
	return out
}

// HandlerInfos returns name/description pairs for all specialized handlers,
// used for status reporting and coordinator responses.
func (r *Router) HandlerInfos() []core.HandlerInfo {
	infos := make([]core.HandlerInfo, len(r.entries))
	for i, e := range r.entries {
		infos[i] = core.HandlerInfo{Name: e.handler.Name(), Description: e.handler.Description()}
	}
	return infos
}
