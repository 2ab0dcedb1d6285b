package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionTool_Call_Success(t *testing.T) {
	ft := NewFunctionTool("echo", "Echo the input",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"msg": map[string]any{"type": "string"},
			},
			"required": []string{"msg"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["msg"], nil
		})

	result, err := ft.Call(context.Background(), map[string]any{"msg": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestFunctionTool_Call_ValidationError(t *testing.T) {
	ft := NewFunctionTool("echo", "Echo the input",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"msg": map[string]any{"type": "string"},
			},
			"required": []string{"msg"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["msg"], nil
		})

	_, err := ft.Call(context.Background(), map[string]any{})
	require.Error(t, err)
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestFunctionTool_Call_ExecutionError(t *testing.T) {
	ft := NewFunctionTool("boom", "Always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("kaboom")
		})

	_, err := ft.Call(context.Background(), map[string]any{})
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Equal(t, "kaboom", toolErr.Message)
}

func TestRegistry_RegisterAndCall(t *testing.T) {
	reg := NewRegistry()
	RegisterCalculator(reg)

	result, err := reg.Call(context.Background(), CalcAdd, map[string]any{"a": 15.0, "b": 27.0})
	require.NoError(t, err)
	assert.Equal(t, 42.0, result)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	reg := NewRegistry()
	ft := NewFunctionTool("dup", "", map[string]any{"type": "object", "properties": map[string]any{}}, func(_ context.Context, _ map[string]any) (any, error) { return nil, nil })
	require.NoError(t, reg.Register(ft))
	assert.Error(t, reg.Register(ft))
}

func TestRegistry_UnknownTool(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Call(context.Background(), "nope", nil)
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "NOT_FOUND", toolErr.Code)
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry()
	RegisterCalculator(reg)
	RegisterTextKit(reg)
	names := reg.Names()
	assert.Contains(t, names, CalcSolveLinear)
	assert.Contains(t, names, TextSentiment)
	// Registration order preserved.
	assert.Equal(t, CalcAdd, names[0])
}

func TestCalculator_Divide(t *testing.T) {
	reg := NewRegistry()
	RegisterCalculator(reg)

	result, err := reg.Call(context.Background(), CalcDivide, map[string]any{"a": 10.0, "b": 4.0})
	require.NoError(t, err)
	assert.Equal(t, 2.5, result)

	_, err = reg.Call(context.Background(), CalcDivide, map[string]any{"a": 10.0, "b": 0.0})
	assert.Error(t, err)
}

func TestCalculator_Sqrt(t *testing.T) {
	reg := NewRegistry()
	RegisterCalculator(reg)

	result, err := reg.Call(context.Background(), CalcSqrt, map[string]any{"x": 25.0})
	require.NoError(t, err)
	assert.Equal(t, 5.0, result)

	_, err = reg.Call(context.Background(), CalcSqrt, map[string]any{"x": -1.0})
	assert.Error(t, err)
}

func TestSolveLinear(t *testing.T) {
	tests := []struct {
		name     string
		equation string
		want     float64
	}{
		{"standard form", "2x + 5 = 15", 5},
		{"negative constant", "3x - 6 = 9", 5},
		{"bare coefficient", "x + 1 = 4", 3},
		{"negative coefficient", "-x + 2 = 1", 1},
		{"no constant", "4x = 8", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := SolveLinear(tt.equation)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, sol.X, 1e-9)
			assert.Equal(t, tt.equation, sol.Equation)
			assert.NotEmpty(t, sol.Steps)
		})
	}
}

func TestSolveLinear_Errors(t *testing.T) {
	tests := []struct {
		name     string
		equation string
	}{
		{"no equals sign", "2x + 5"},
		{"zero coefficient", "0x + 5 = 5"},
		{"not linear", "hello = world"},
		{"two equals", "1 = 2 = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SolveLinear(tt.equation)
			assert.Error(t, err)
		})
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
	}{
		{"positive", "I love sunny days, they are wonderful and amazing", "positive"},
		{"negative", "this is terrible and awful, I hate it", "negative"},
		{"neutral", "the meeting is at noon", "neutral"},
		{"balanced", "good food but terrible service", "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AnalyzeSentiment(tt.text)
			assert.Equal(t, tt.label, s.Label)
			assert.Greater(t, s.Confidence, 0.0)
		})
	}
}

func TestAnalyzeSentiment_Counts(t *testing.T) {
	s := AnalyzeSentiment("great great product, bad delivery")
	assert.Equal(t, 2, s.PositiveWords)
	assert.Equal(t, 1, s.NegativeWords)
	assert.Equal(t, "positive", s.Label)
	assert.InDelta(t, 0.5, s.Confidence, 1e-9) // 2 / (2+1+1)
}

func TestExtractNumbers(t *testing.T) {
	assert.Equal(t, []float64{10, 5}, ExtractNumbers("Calculate 10 * 5"))
	assert.Equal(t, []float64{-3.5, 42}, ExtractNumbers("from -3.5 up to 42"))
	assert.Empty(t, ExtractNumbers("no digits here"))
}

func TestSummarize(t *testing.T) {
	text := "First sentence. Second sentence! Third sentence? Fourth sentence."
	assert.Equal(t, "First sentence. Second sentence. Third sentence.", Summarize(text, 3))
	assert.Equal(t, "First sentence.", Summarize(text, 1))
	assert.Equal(t, "", Summarize("", 3))
}

func TestSolveLinear_ViaRegistry(t *testing.T) {
	reg := NewRegistry()
	RegisterCalculator(reg)

	result, err := reg.Call(context.Background(), CalcSolveLinear, map[string]any{"equation": "2x + 5 = 15"})
	require.NoError(t, err)
	sol, ok := result.(*Solution)
	require.True(t, ok)
	assert.InDelta(t, 5.0, sol.X, 1e-9)
}
