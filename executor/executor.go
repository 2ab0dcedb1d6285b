package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/router"
)

// Options holds configuration for the executor.
type Options struct {
	// Logger is the logger to use. Defaults to a no-op logger.
	Logger logging.Logger
	// Concurrency bounds how many steps run at once. Values below 2 keep
	// execution sequential, which preserves handler-visible step ordering.
	Concurrency int
}

// Executor routes and runs individual steps. It is safe for concurrent use
// once constructed, provided the router registration phase has finished.
type Executor struct {
	router      *router.Router
	logger      logging.Logger
	concurrency int
}

// New creates an executor on top of a router.
func New(r *router.Router, optFns ...func(o *Options)) *Executor {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Executor{router: r, logger: opts.Logger, concurrency: opts.Concurrency}
}

// Run executes the given step descriptions derived from req. The result
// slice has one entry per description, in input order, and every entry
// carries a terminal status. Run never returns an error: routing misses,
// handler failures and panics all surface as step statuses.
func (e *Executor) Run(ctx context.Context, req core.Request, descriptions []string) []core.Step {
	steps := make([]core.Step, len(descriptions))

	if e.concurrency > 1 && len(descriptions) > 1 {
		e.runParallel(ctx, req, descriptions, steps)
	} else {
		for i, desc := range descriptions {
			steps[i] = e.runStep(ctx, req, i+1, desc)
		}
	}
	return steps
}

func (e *Executor) runParallel(ctx context.Context, req core.Request, descriptions []string, steps []core.Step) {
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, desc := range descriptions {
		wg.Add(1)
		go func(i int, desc string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			steps[i] = e.runStep(ctx, req, i+1, desc)
		}(i, desc)
	}
	wg.Wait()
}

// runStep routes one step description and invokes the selected handler. The
// parent request's context mapping is carried into the per-step request.
func (e *Executor) runStep(ctx context.Context, req core.Request, index int, desc string) core.Step {
	step := core.Step{Index: index, Description: desc, Status: core.StepPlanned}

	if strings.TrimSpace(desc) == "" {
		step.Status = core.StepUnhandled
		step.Note = "empty step description"
		return step
	}
	if err := ctx.Err(); err != nil {
		step.Status = core.StepFailed
		step.Err = err.Error()
		return step
	}

	stepReq := req.WithText(desc)
	h, score, err := e.router.Select(stepReq)
	if err != nil {
		if !errors.Is(err, router.ErrNoHandler) {
			e.logger.Warn("step routing failed", "step", index, "error", err)
		}
		step.Status = core.StepUnhandled
		step.Note = "no specialized handler available for this step"
		return step
	}
	e.logger.Debug("step routed", "step", index, "handler", h.Name(), "score", score)

	out := e.invoke(ctx, h, stepReq)
	step.HandledBy = h.Name()
	step.Result = &out
	if out.Success {
		step.Status = core.StepCompleted
	} else {
		step.Status = core.StepFailed
		step.Err = out.Err
	}
	return step
}

// invoke calls the handler with panic isolation so one bad step cannot take
// down the run.
func (e *Executor) invoke(ctx context.Context, h core.Handler, req core.Request) (out core.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("handler panicked", "handler", h.Name(), "panic", fmt.Sprintf("%v", rec))
			out = core.ErrorOutcome(h.Name(), fmt.Sprintf("handler panicked: %v", rec))
		}
	}()
	return h.Process(ctx, req)
}
