package taskmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/handler"
	"github.com/hupe1980/taskmesh/tool"
)

func newMesh(t *testing.T) *TaskMesh {
	t.Helper()
	m := New()
	require.NoError(t, m.RegisterBuiltins())
	return m
}

func TestTaskMesh_Dispatch_DirectMathDelegation(t *testing.T) {
	m := newMesh(t)

	res, err := m.Dispatch(context.Background(), "s1", "Calculate the sum of 15 and 27")
	require.NoError(t, err)

	assert.True(t, res.SingleStep)
	assert.Equal(t, handler.MathName, res.HandledBy)
	require.NotNil(t, res.Outcome)
	require.True(t, res.Outcome.Success, res.Outcome.Err)

	sum, ok := res.Outcome.Payload.(handler.Summation)
	require.True(t, ok)
	assert.InDelta(t, 42, sum.Total, 1e-9)
}

func TestTaskMesh_Dispatch_EquationSolving(t *testing.T) {
	m := newMesh(t)

	res, err := m.Dispatch(context.Background(), "s1", "Please solve the equation: 2x + 5 = 15")
	require.NoError(t, err)

	assert.True(t, res.SingleStep)
	assert.Equal(t, handler.MathName, res.HandledBy)
	require.NotNil(t, res.Outcome)
	require.True(t, res.Outcome.Success, res.Outcome.Err)

	sol, ok := res.Outcome.Payload.(*tool.Solution)
	require.True(t, ok)
	assert.InDelta(t, 5, sol.X, 1e-9)
}

func TestTaskMesh_Dispatch_CompositeRequest(t *testing.T) {
	m := newMesh(t)

	res, err := m.Dispatch(context.Background(), "s1",
		`Calculate 10 * 5 and then analyze the sentiment of "I love this product"`)
	require.NoError(t, err)

	assert.False(t, res.SingleStep)
	require.NotNil(t, res.Report)
	assert.Equal(t, 2, res.Report.TotalSteps)
	assert.Equal(t, 2, res.Report.CompletedSteps)

	assert.Equal(t, handler.MathName, res.Report.Steps[0].HandledBy)
	require.NotNil(t, res.Report.Steps[0].Result)
	assert.InDelta(t, 50, res.Report.Steps[0].Result.Payload.(float64), 1e-9)

	assert.Equal(t, handler.TextName, res.Report.Steps[1].HandledBy)
	s, ok := res.Report.Steps[1].Result.Payload.(tool.Sentiment)
	require.True(t, ok)
	assert.Equal(t, "positive", s.Label)
}

func TestTaskMesh_Dispatch_UnmatchedGoesToCoordinator(t *testing.T) {
	m := newMesh(t)

	res, err := m.Dispatch(context.Background(), "s1", "Tell me a joke")
	require.NoError(t, err)

	assert.True(t, res.SingleStep)
	assert.Equal(t, handler.CoordinatorName, res.HandledBy)
	require.NotNil(t, res.Outcome)
	assert.True(t, res.Outcome.Success)
	assert.Contains(t, res.Outcome.Content, handler.MathName)
}

func TestTaskMesh_Dispatch_EmptyRequest(t *testing.T) {
	m := newMesh(t)

	res, err := m.Dispatch(context.Background(), "s1", "   ")
	require.NoError(t, err)

	assert.Equal(t, handler.CoordinatorName, res.HandledBy)
	require.NotNil(t, res.Report)
	assert.Equal(t, 1, res.Report.TotalSteps)
	assert.Equal(t, 1, res.Report.CompletedSteps)
}

func TestTaskMesh_Dispatch_RecordsHistory(t *testing.T) {
	m := newMesh(t)

	_, err := m.Dispatch(context.Background(), "s1", "Calculate the sum of 15 and 27")
	require.NoError(t, err)

	turns, err := m.History("s1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "assistant", turns[1].Role)
	assert.Equal(t, handler.MathName, turns[1].Handler)
	assert.Contains(t, turns[1].Content, "42")
}

func TestTaskMesh_Dispatch_GeneratesSessionID(t *testing.T) {
	m := newMesh(t)

	_, err := m.Dispatch(context.Background(), "", "Calculate the sum of 1 and 2")
	assert.NoError(t, err)
}

func TestTaskMesh_Status(t *testing.T) {
	m := newMesh(t)

	st := m.Status()
	require.Len(t, st.Handlers, 2)
	assert.Equal(t, handler.MathName, st.Handlers[0].Name)
	assert.Equal(t, handler.TextName, st.Handlers[1].Name)
	assert.Equal(t, handler.CoordinatorName, st.Fallback)
	assert.Equal(t, 0, st.Sessions)

	_, err := m.Dispatch(context.Background(), "s1", "Calculate the sum of 1 and 2")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Status().Sessions)
}

func TestTaskMesh_Register_Duplicate(t *testing.T) {
	m := newMesh(t)

	reg := tool.NewRegistry()
	tool.RegisterCalculator(reg)
	dup := handler.NewMath(reg)

	err := m.Register(dup, dup.Affinity())
	assert.Error(t, err)
}

func TestTaskMesh_Dispatch_NoFallbackConfigured(t *testing.T) {
	m := New()

	_, err := m.Dispatch(context.Background(), "s1", "anything")
	assert.Error(t, err)
}

var _ core.SessionStore = (*stubStore)(nil)

type stubStore struct {
	turns []core.Turn
}

func (s *stubStore) Create(id string) (*core.Session, error) { return core.NewSession(id), nil }
func (s *stubStore) Get(id string) (*core.Session, error)    { return core.NewSession(id), nil }

func (s *stubStore) AppendTurn(_ string, turn core.Turn) error {
	s.turns = append(s.turns, turn)
	return nil
}

func TestTaskMesh_CustomSessionStore(t *testing.T) {
	store := &stubStore{}
	m := New(func(o *Options) {
		o.SessionStore = store
	})
	require.NoError(t, m.RegisterBuiltins())

	_, err := m.Dispatch(context.Background(), "s1", "Calculate the sum of 1 and 2")
	require.NoError(t, err)
	assert.Len(t, store.turns, 2)
}
