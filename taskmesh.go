// Package taskmesh provides a high-level façade over the routing engine and
// its services (sessions, tools & logging) enabling rapid construction of
// capability-routed request processing. Most applications interact with this
// package by:
//  1. Creating a TaskMesh via New() (optionally overriding default in-memory services)
//  2. Registering specialized handlers plus a fallback, or calling RegisterBuiltins()
//  3. Dispatching requests with Dispatch()
//
// The façade delegates orchestration to engine.Engine while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production deployments typically supply a durable session
// store and a structured logger.
package taskmesh

import (
	"context"
	"time"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/engine"
	"github.com/hupe1980/taskmesh/handler"
	"github.com/hupe1980/taskmesh/internal/util"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/model"
	"github.com/hupe1980/taskmesh/router"
	"github.com/hupe1980/taskmesh/session"
	"github.com/hupe1980/taskmesh/tool"
)

// Options configures the TaskMesh instance.
type Options struct {
	// SessionStore persists conversation history. Defaults to an in-memory
	// implementation.
	SessionStore core.SessionStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger

	// Concurrency bounds parallel step execution for composite requests.
	// Values below 2 keep step execution sequential.
	Concurrency int

	// Model, when set, lets the built-in coordinator generate free-form
	// replies for unmatched requests instead of a static capability listing.
	// Only consulted by RegisterBuiltins.
	Model model.Model
}

// Status describes the current handler topology for diagnostics.
type Status struct {
	Handlers []core.HandlerInfo `json:"handlers"`
	Fallback string             `json:"fallback,omitempty"`
	// Sessions is the number of stored sessions, when the session store can
	// report one; -1 otherwise.
	Sessions int `json:"sessions"`
}

// TaskMesh is the high-level façade aggregating the router, engine and
// session store.
type TaskMesh struct {
	opts   Options
	router *router.Router
	engine *engine.Engine
	store  core.SessionStore
}

// New creates a new TaskMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *TaskMesh {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := router.New(func(o *router.Options) {
		o.Logger = opts.Logger
	})
	e := engine.New(r, func(o *engine.Options) {
		o.Logger = opts.Logger
		o.Concurrency = opts.Concurrency
	})

	return &TaskMesh{opts: opts, router: r, engine: e, store: opts.SessionStore}
}

// Register adds a specialized handler with its scoring policy.
func (m *TaskMesh) Register(h core.Handler, affinity router.Affinity) error {
	return m.router.Register(h, affinity)
}

// SetFallback designates the handler consulted when no specialized handler
// matches. The fallback never participates in scoring.
func (m *TaskMesh) SetFallback(h core.Handler) { m.router.SetFallback(h) }

// RegisterBuiltins wires the built-in math and text handlers backed by the
// calculator and text tools, and installs the coordinator as fallback.
func (m *TaskMesh) RegisterBuiltins() error {
	reg := tool.NewRegistry(func(o *tool.RegistryOptions) {
		o.Logger = m.opts.Logger
	})
	tool.RegisterCalculator(reg)
	tool.RegisterTextKit(reg)

	mathHandler := handler.NewMath(reg, func(o *handler.Options) {
		o.Logger = m.opts.Logger
	})
	if err := m.Register(mathHandler, mathHandler.Affinity()); err != nil {
		return err
	}

	textHandler := handler.NewText(reg, func(o *handler.Options) {
		o.Logger = m.opts.Logger
	})
	if err := m.Register(textHandler, textHandler.Affinity()); err != nil {
		return err
	}

	m.SetFallback(handler.NewCoordinator(m.router.HandlerInfos, func(o *handler.CoordinatorOptions) {
		o.Logger = m.opts.Logger
		o.Model = m.opts.Model
	}))
	return nil
}

// Dispatch processes one request within a session. A blank sessionID starts
// a fresh session with a generated id. The user request and the response
// summary are recorded as session turns.
func (m *TaskMesh) Dispatch(ctx context.Context, sessionID, text string) (core.Result, error) {
	if sessionID == "" {
		sessionID = util.NewID()
	}

	req := core.NewRequest(text, map[string]any{"session_id": sessionID})
	res, err := m.engine.Dispatch(ctx, req)
	if err != nil {
		return core.Result{}, err
	}

	now := time.Now()
	_ = m.store.AppendTurn(sessionID, core.Turn{Role: "user", Content: text, Timestamp: now})
	_ = m.store.AppendTurn(sessionID, core.Turn{
		Role:      "assistant",
		Content:   res.Summary(),
		Handler:   res.HandledBy,
		Timestamp: now,
	})
	return res, nil
}

// History returns up to n most recent turns of a session in chronological
// order. n <= 0 returns all retained turns.
func (m *TaskMesh) History(sessionID string, n int) ([]core.Turn, error) {
	s, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Recent(n), nil
}

// Status reports the registered handler topology.
func (m *TaskMesh) Status() Status {
	st := Status{Handlers: m.router.HandlerInfos(), Sessions: -1}
	if fb := m.router.Fallback(); fb != nil {
		st.Fallback = fb.Name()
	}
	if counter, ok := m.store.(interface{ Len() int }); ok {
		st.Sessions = counter.Len()
	}
	return st
}
