package executor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/router"
)

type stubHandler struct {
	name    string
	keyword string
	fail    bool
	panics  bool
}

func (s *stubHandler) Name() string        { return s.name }
func (s *stubHandler) Description() string { return "stub handler" }

func (s *stubHandler) CanHandle(req core.Request) bool {
	return strings.Contains(strings.ToLower(req.Text()), s.keyword)
}

func (s *stubHandler) Process(_ context.Context, req core.Request) core.Outcome {
	if s.panics {
		panic("boom")
	}
	if s.fail {
		return core.ErrorOutcome(s.name, "stub failure")
	}
	return core.NewOutcome(s.name, "handled: "+req.Text(), nil)
}

func newRouter(t *testing.T, handlers ...*stubHandler) *router.Router {
	t.Helper()
	r := router.New()
	for _, h := range handlers {
		require.NoError(t, r.Register(h, router.Affinity{Base: 0.5, Indicators: []string{h.keyword}}))
	}
	return r
}

func TestExecutor_Run_AllCompleted(t *testing.T) {
	r := newRouter(t,
		&stubHandler{name: "alpha", keyword: "alpha"},
		&stubHandler{name: "beta", keyword: "beta"},
	)
	e := New(r)

	req := core.NewRequest("alpha work and beta work", nil)
	steps := e.Run(context.Background(), req, []string{"alpha work", "beta work"})
	require.Len(t, steps, 2)

	assert.Equal(t, core.StepCompleted, steps[0].Status)
	assert.Equal(t, "alpha", steps[0].HandledBy)
	assert.Equal(t, core.StepCompleted, steps[1].Status)
	assert.Equal(t, "beta", steps[1].HandledBy)
}

func TestExecutor_Run_FailureIsolation(t *testing.T) {
	r := newRouter(t,
		&stubHandler{name: "alpha", keyword: "alpha", fail: true},
		&stubHandler{name: "beta", keyword: "beta"},
	)
	e := New(r)

	steps := e.Run(context.Background(), core.NewRequest("", nil), []string{"alpha work", "beta work"})
	require.Len(t, steps, 2)

	assert.Equal(t, core.StepFailed, steps[0].Status)
	assert.Equal(t, "stub failure", steps[0].Err)
	assert.Equal(t, core.StepCompleted, steps[1].Status)
}

func TestExecutor_Run_PanicIsolation(t *testing.T) {
	r := newRouter(t,
		&stubHandler{name: "alpha", keyword: "alpha", panics: true},
		&stubHandler{name: "beta", keyword: "beta"},
	)
	e := New(r)

	steps := e.Run(context.Background(), core.NewRequest("", nil), []string{"alpha work", "beta work"})
	require.Len(t, steps, 2)

	assert.Equal(t, core.StepFailed, steps[0].Status)
	assert.Contains(t, steps[0].Err, "panicked")
	assert.Equal(t, core.StepCompleted, steps[1].Status)
}

func TestExecutor_Run_UnhandledStep(t *testing.T) {
	r := newRouter(t, &stubHandler{name: "alpha", keyword: "alpha"})
	e := New(r)

	steps := e.Run(context.Background(), core.NewRequest("", nil), []string{"unknown work"})
	require.Len(t, steps, 1)

	assert.Equal(t, core.StepUnhandled, steps[0].Status)
	assert.Equal(t, "no specialized handler available for this step", steps[0].Note)
	assert.Empty(t, steps[0].HandledBy)
}

func TestExecutor_Run_EmptyDescription(t *testing.T) {
	r := newRouter(t, &stubHandler{name: "alpha", keyword: "alpha"})
	e := New(r)

	steps := e.Run(context.Background(), core.NewRequest("", nil), []string{"   "})
	require.Len(t, steps, 1)
	assert.Equal(t, core.StepUnhandled, steps[0].Status)
	assert.Equal(t, "empty step description", steps[0].Note)
}

func TestExecutor_Run_CanceledContext(t *testing.T) {
	r := newRouter(t, &stubHandler{name: "alpha", keyword: "alpha"})
	e := New(r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	steps := e.Run(ctx, core.NewRequest("", nil), []string{"alpha work"})
	require.Len(t, steps, 1)
	assert.Equal(t, core.StepFailed, steps[0].Status)
}

func TestExecutor_Run_ParallelPreservesOrder(t *testing.T) {
	r := newRouter(t,
		&stubHandler{name: "alpha", keyword: "alpha"},
		&stubHandler{name: "beta", keyword: "beta"},
		&stubHandler{name: "gamma", keyword: "gamma"},
	)
	e := New(r, func(o *Options) {
		o.Concurrency = 3
	})

	steps := e.Run(context.Background(), core.NewRequest("", nil), []string{"alpha work", "beta work", "gamma work"})
	require.Len(t, steps, 3)

	for i, want := range []string{"alpha", "beta", "gamma"} {
		assert.Equal(t, i+1, steps[i].Index)
		assert.Equal(t, want, steps[i].HandledBy)
		assert.Equal(t, core.StepCompleted, steps[i].Status)
	}
}

func TestMerge(t *testing.T) {
	steps := []core.Step{
		{Index: 1, Status: core.StepCompleted},
		{Index: 2, Status: core.StepFailed},
		{Index: 3, Status: core.StepCompleted},
		{Index: 4, Status: core.StepUnhandled},
	}

	report := Merge(steps)
	assert.Equal(t, 4, report.TotalSteps)
	assert.Equal(t, 2, report.CompletedSteps)
	require.Len(t, report.Steps, 4)
	assert.Equal(t, 1, report.Steps[0].Index)
}

func TestMerge_Empty(t *testing.T) {
	report := Merge(nil)
	assert.Equal(t, 0, report.TotalSteps)
	assert.Equal(t, 0, report.CompletedSteps)
	assert.Empty(t, report.Steps)
}
