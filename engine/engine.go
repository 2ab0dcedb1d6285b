package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/decompose"
	"github.com/hupe1980/taskmesh/executor"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/router"
)

// ErrNoFallback is returned when a request needs the fallback handler but
// none is configured on the router.
var ErrNoFallback = errors.New("no fallback handler configured")

// Options holds configuration for the engine.
type Options struct {
	// Logger is the logger to use. Defaults to a no-op logger.
	Logger logging.Logger
	// Concurrency bounds parallel step execution. Values below 2 keep step
	// execution sequential.
	Concurrency int
}

// Engine dispatches requests: it routes single-step requests directly and
// decomposes composite requests into steps executed with failure isolation.
type Engine struct {
	router *router.Router
	exec   *executor.Executor
	logger logging.Logger
}

// New creates an engine on top of a router.
func New(r *router.Router, optFns ...func(o *Options)) *Engine {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	exec := executor.New(r, func(o *executor.Options) {
		o.Logger = opts.Logger
		o.Concurrency = opts.Concurrency
	})
	return &Engine{router: r, exec: exec, logger: opts.Logger}
}

// Dispatch processes one request end to end and always terminates with a
// result: a direct outcome for single-step requests, a step report for
// composite ones. The only error condition is a missing fallback handler
// when one is required.
func (e *Engine) Dispatch(ctx context.Context, req core.Request) (core.Result, error) {
	start := time.Now()

	if req.IsEmpty() {
		return e.fallbackReport(ctx, req)
	}

	steps := decompose.Split(req.Text())
	composite := len(steps) > 1

	h, score, err := e.router.Select(req)
	switch {
	case err == nil && !composite:
		e.logger.Debug("request routed", "handler", h.Name(), "score", score)
		out := e.invoke(ctx, h, req)
		e.logger.Info("request handled", "handler", h.Name(), "success", out.Success, "duration", time.Since(start))
		return core.Result{HandledBy: h.Name(), SingleStep: true, Outcome: &out}, nil

	case err != nil && !composite:
		return e.fallbackDirect(ctx, req, start)

	default:
		executed := e.exec.Run(ctx, req, steps)
		report := executor.Merge(executed)

		res := core.Result{Report: &report}
		if fb := e.router.Fallback(); fb != nil {
			res.HandledBy = fb.Name()
		}
		e.logger.Info("request decomposed",
			"steps", report.TotalSteps, "completed", report.CompletedSteps, "duration", time.Since(start))
		return res, nil
	}
}

// fallbackDirect hands an unmatched single-step request to the fallback
// handler.
func (e *Engine) fallbackDirect(ctx context.Context, req core.Request, start time.Time) (core.Result, error) {
	fb := e.router.Fallback()
	if fb == nil {
		return core.Result{}, ErrNoFallback
	}
	out := e.invoke(ctx, fb, req)
	e.logger.Info("request handled by fallback", "handler", fb.Name(), "success", out.Success, "duration", time.Since(start))
	return core.Result{HandledBy: fb.Name(), SingleStep: true, Outcome: &out}, nil
}

// fallbackReport handles an empty request: the fallback responds and the
// result is reported as a single completed step.
func (e *Engine) fallbackReport(ctx context.Context, req core.Request) (core.Result, error) {
	fb := e.router.Fallback()
	if fb == nil {
		return core.Result{}, ErrNoFallback
	}
	out := e.invoke(ctx, fb, req)

	step := core.Step{
		Index:       1,
		Description: req.Text(),
		HandledBy:   fb.Name(),
		Result:      &out,
	}
	if out.Success {
		step.Status = core.StepCompleted
	} else {
		step.Status = core.StepFailed
		step.Err = out.Err
	}
	report := executor.Merge([]core.Step{step})
	return core.Result{HandledBy: fb.Name(), Report: &report}, nil
}

func (e *Engine) invoke(ctx context.Context, h core.Handler, req core.Request) (out core.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("handler panicked", "handler", h.Name(), "panic", fmt.Sprintf("%v", rec))
			out = core.ErrorOutcome(h.Name(), fmt.Sprintf("handler panicked: %v", rec))
		}
	}()
	return h.Process(ctx, req)
}
