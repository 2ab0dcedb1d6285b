package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/taskmesh/logging"
)

// Registry is the explicit, statically constructed tool table. All tools are
// registered during startup; the registry is read-only afterwards so Call and
// Get need no locking on the hot path. Dispatch resolves a registered Tool
// value by name and calls through its interface, never through reflection.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger logging.Logger
}

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// Logger receives per-call timing diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// NewRegistry constructs an empty tool registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{tools: make(map[string]Tool), logger: opts.Logger}
}

// Register adds a tool, rejecting duplicate names.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return fmt.Errorf("tool must not be nil")
	}
	if _, exists := r.tools[t.Name()]; exists {
		return fmt.Errorf("tool %q already registered", t.Name())
	}
	r.tools[t.Name()] = t
	r.order = append(r.order, t.Name())
	return nil
}

// MustRegister registers a set of tools, panicking on duplicates. Intended
// for static startup wiring where a duplicate is a programming error.
func (r *Registry) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Get returns the named tool and whether it exists.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Call resolves a tool by name and executes it with the given arguments.
// Unknown tool names yield a *ToolError with code NOT_FOUND.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, NewToolError(name, "tool not registered", "NOT_FOUND")
	}

	start := time.Now()
	result, err := t.Call(ctx, args)
	dur := time.Since(start)
	if err != nil {
		r.logger.Error("tool.call.error", "tool", name, "duration_ms", dur.Milliseconds(), "error", err.Error())
		return nil, err
	}
	r.logger.Debug("tool.call.success", "tool", name, "duration_ms", dur.Milliseconds())
	return result, nil
}
