package handler

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/router"
	"github.com/hupe1980/taskmesh/tool"
)

// MathName is the registered name of the math handler.
const MathName = "math"

var mathKeywords = []string{
	"calculate", "compute", "solve", "equation", "math", "mathematics",
	"add", "subtract", "multiply", "divide", "sum", "difference",
	"product", "quotient", "square", "root", "power", "algebra",
	"number", "numbers", "+", "-", "*", "/", "=", "x", "y",
}

// textExclusions are phrases that push a request towards the text handler
// even when it contains numbers.
var textExclusions = []string{
	"sentiment", "analyze", "count words", "text analysis", "extract numbers",
}

var (
	digitPattern    = regexp.MustCompile(`\d+`)
	operatorPattern = regexp.MustCompile(`[+\-*/=]`)
	equationPattern = regexp.MustCompile(`\w*[xyz]\w*\s*[+\-*/]?\s*\d*\s*=`)
)

// equationExtractors, tried in order, pull the equation substring out of a
// natural-language request. Shorter sentence fragments win over the whole
// request text.
var equationExtractors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)equation\s*:?\s*([^.!?]*=[^.!?]*)`),
	regexp.MustCompile(`(?i)solve\s*:?\s*([^.!?]*=[^.!?]*)`),
	regexp.MustCompile(`(?i)([^.!?]*\w*[xyz]\w*[^.!?]*=[^.!?]*)`),
	regexp.MustCompile(`([^.!?]*=[^.!?]*)`),
}

// Summation is the structured payload when a request reduces to adding up
// its numbers.
type Summation struct {
	Numbers []float64 `json:"numbers"`
	Total   float64   `json:"total"`
}

// NumberFacts is the structured payload for a single-number analysis.
type NumberFacts struct {
	Value    float64 `json:"value"`
	Square   float64 `json:"square"`
	Absolute float64 `json:"absolute"`
}

// Math handles mathematical requests: arithmetic, linear equation solving,
// powers and square roots. Calculations are dispatched to calculator tools
// registered in the provided registry.
type Math struct {
	registry *tool.Registry
	logger   logging.Logger
}

// NewMath creates a math handler backed by the given tool registry. The
// registry must contain the calculator tools (see tool.RegisterCalculator).
func NewMath(registry *tool.Registry, optFns ...func(o *Options)) *Math {
	opts := applyOptions(optFns)
	return &Math{registry: registry, logger: opts.Logger}
}

// Name implements core.Handler.
func (h *Math) Name() string { return MathName }

// Description implements core.Handler.
func (h *Math) Description() string {
	return "Specialized in mathematical calculations, equation solving, and numerical analysis"
}

// Affinity returns the scoring policy for this handler.
func (h *Math) Affinity() router.Affinity {
	return router.Affinity{
		Base:       0.6,
		Indicators: []string{"calculate", "solve", "equation", "math", "+", "-", "*", "/", "="},
		Weight:     router.DefaultWeight,
	}
}

// CanHandle implements core.Handler. Strong math signals (an equation, the
// word "solve", an equals sign) override the text exclusions; otherwise a
// request matching a text exclusion is declined even if it contains numbers.
func (h *Math) CanHandle(req core.Request) bool {
	text := req.Text()
	lower := strings.ToLower(text)

	strong := equationPattern.MatchString(text) ||
		strings.Contains(lower, "solve") ||
		strings.Contains(text, "=") ||
		strings.Contains(lower, "calculate") ||
		strings.Contains(lower, "sum of")
	if strong {
		return true
	}
	if containsAny(lower, textExclusions) {
		return false
	}
	return containsAny(lower, mathKeywords) ||
		(digitPattern.MatchString(text) && operatorPattern.MatchString(text))
}

// Process implements core.Handler.
func (h *Math) Process(ctx context.Context, req core.Request) core.Outcome {
	text := req.Text()
	lower := strings.ToLower(text)

	switch {
	case (strings.Contains(lower, "solve") || strings.Contains(lower, "equation")) && strings.Contains(text, "="):
		return h.solveEquation(ctx, text)
	case strings.ContainsAny(text, "+-*/"):
		return h.arithmetic(ctx, text)
	case strings.Contains(lower, "square root") || strings.Contains(lower, "sqrt"):
		return h.squareRoot(ctx, text)
	case strings.Contains(lower, "power") || strings.Contains(text, "^") || strings.Contains(text, "**"):
		return h.power(ctx, text)
	default:
		return h.generalMath(text)
	}
}

func (h *Math) solveEquation(ctx context.Context, text string) core.Outcome {
	var equation string
	for _, re := range equationExtractors {
		if m := re.FindStringSubmatch(text); m != nil {
			equation = strings.TrimSpace(m[1])
			break
		}
	}
	if equation == "" {
		return core.ErrorOutcome(MathName, "could not extract an equation from the request")
	}

	result, err := h.registry.Call(ctx, tool.CalcSolveLinear, map[string]any{"equation": equation})
	if err != nil {
		return core.ErrorOutcome(MathName, fmt.Sprintf("could not solve the equation: %v", err))
	}
	sol, ok := result.(*tool.Solution)
	if !ok {
		return core.ErrorOutcome(MathName, "unexpected solver result type")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Solved %s: x = %g\n\nSteps:\n", sol.Equation, sol.X)
	for _, step := range sol.Steps {
		fmt.Fprintf(&b, "  - %s\n", step)
	}
	return core.NewOutcome(MathName, b.String(), sol)
}

func (h *Math) arithmetic(ctx context.Context, text string) core.Outcome {
	numbers := tool.ExtractNumbers(text)
	if len(numbers) < 2 {
		return core.ErrorOutcome(MathName, "need at least two numbers for arithmetic")
	}
	a, b := numbers[0], numbers[1]

	lower := strings.ToLower(text)
	var name string
	switch {
	case strings.Contains(text, "+") || strings.Contains(lower, "add") || strings.Contains(lower, "sum"):
		name = tool.CalcAdd
	case strings.Contains(text, "-") || strings.Contains(lower, "subtract") || strings.Contains(lower, "difference"):
		name = tool.CalcSubtract
	case strings.Contains(text, "*") || strings.Contains(lower, "multiply") || strings.Contains(lower, "product"):
		name = tool.CalcMultiply
	case strings.Contains(text, "/") || strings.Contains(lower, "divide") || strings.Contains(lower, "quotient"):
		name = tool.CalcDivide
	default:
		name = tool.CalcAdd
	}

	result, err := h.registry.Call(ctx, name, map[string]any{"a": a, "b": b})
	if err != nil {
		return core.ErrorOutcome(MathName, fmt.Sprintf("could not perform the calculation: %v", err))
	}
	return core.NewOutcome(MathName, fmt.Sprintf("The calculation result is %g", result), result)
}

func (h *Math) squareRoot(ctx context.Context, text string) core.Outcome {
	numbers := tool.ExtractNumbers(text)
	if len(numbers) == 0 {
		return core.ErrorOutcome(MathName, "could not find a number for the square root")
	}
	result, err := h.registry.Call(ctx, tool.CalcSqrt, map[string]any{"x": numbers[0]})
	if err != nil {
		return core.ErrorOutcome(MathName, fmt.Sprintf("could not calculate the square root: %v", err))
	}
	return core.NewOutcome(MathName, fmt.Sprintf("The square root result is %g", result), result)
}

func (h *Math) power(ctx context.Context, text string) core.Outcome {
	numbers := tool.ExtractNumbers(text)
	if len(numbers) < 2 {
		return core.ErrorOutcome(MathName, "need a base and an exponent for a power calculation")
	}
	result, err := h.registry.Call(ctx, tool.CalcPower, map[string]any{"base": numbers[0], "exponent": numbers[1]})
	if err != nil {
		return core.ErrorOutcome(MathName, fmt.Sprintf("could not calculate the power: %v", err))
	}
	return core.NewOutcome(MathName, fmt.Sprintf("The power result is %g", result), result)
}

// generalMath sums multiple numbers or reports basic facts about a single
// number. It needs no tools, so it cannot fail once a number is present.
func (h *Math) generalMath(text string) core.Outcome {
	numbers := tool.ExtractNumbers(text)
	if len(numbers) == 0 {
		return core.ErrorOutcome(MathName, "no numbers found in the request")
	}

	if len(numbers) > 1 {
		var total float64
		for _, n := range numbers {
			total += n
		}
		payload := Summation{Numbers: numbers, Total: total}
		return core.NewOutcome(MathName, fmt.Sprintf("The sum of the numbers %v is %g", numbers, total), payload)
	}

	n := numbers[0]
	facts := NumberFacts{Value: n, Square: n * n, Absolute: abs(n)}
	content := fmt.Sprintf("Analysis of %g: square = %g, absolute value = %g", facts.Value, facts.Square, facts.Absolute)
	return core.NewOutcome(MathName, content, facts)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
