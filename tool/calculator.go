package tool

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Calculator tool names.
const (
	CalcAdd         = "calculator.add"
	CalcSubtract    = "calculator.subtract"
	CalcMultiply    = "calculator.multiply"
	CalcDivide      = "calculator.divide"
	CalcPower       = "calculator.power"
	CalcSqrt        = "calculator.sqrt"
	CalcSolveLinear = "calculator.solve_linear_equation"
)

// Solution is the structured result of solving a linear equation.
type Solution struct {
	Equation string   `json:"equation"`
	X        float64  `json:"solution"`
	Steps    []string `json:"steps"`
}

func binarySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func binaryArgs(args map[string]any) (float64, float64, error) {
	a, okA := toFloat(args["a"])
	b, okB := toFloat(args["b"])
	if !okA || !okB {
		return 0, 0, fmt.Errorf("arguments a and b must be numbers")
	}
	return a, b, nil
}

// RegisterCalculator wires the arithmetic and equation-solving tools into a
// registry. The set mirrors what the math handler invokes: the four basic
// operations, power, square root and linear equation solving.
func RegisterCalculator(reg *Registry) {
	reg.MustRegister(
		NewFunctionTool(CalcAdd, "Add two numbers", binarySchema(),
			func(_ context.Context, args map[string]any) (any, error) {
				a, b, err := binaryArgs(args)
				if err != nil {
					return nil, err
				}
				return a + b, nil
			}),
		NewFunctionTool(CalcSubtract, "Subtract b from a", binarySchema(),
			func(_ context.Context, args map[string]any) (any, error) {
				a, b, err := binaryArgs(args)
				if err != nil {
					return nil, err
				}
				return a - b, nil
			}),
		NewFunctionTool(CalcMultiply, "Multiply two numbers", binarySchema(),
			func(_ context.Context, args map[string]any) (any, error) {
				a, b, err := binaryArgs(args)
				if err != nil {
					return nil, err
				}
				return a * b, nil
			}),
		NewFunctionTool(CalcDivide, "Divide a by b", binarySchema(),
			func(_ context.Context, args map[string]any) (any, error) {
				a, b, err := binaryArgs(args)
				if err != nil {
					return nil, err
				}
				if b == 0 {
					return nil, fmt.Errorf("cannot divide by zero")
				}
				return a / b, nil
			}),
		NewFunctionTool(CalcPower, "Raise base to the power of exponent",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"base":     map[string]any{"type": "number"},
					"exponent": map[string]any{"type": "number"},
				},
				"required": []string{"base", "exponent"},
			},
			func(_ context.Context, args map[string]any) (any, error) {
				base, okB := toFloat(args["base"])
				exp, okE := toFloat(args["exponent"])
				if !okB || !okE {
					return nil, fmt.Errorf("arguments base and exponent must be numbers")
				}
				return math.Pow(base, exp), nil
			}),
		NewFunctionTool(CalcSqrt, "Calculate the square root of x",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"x": map[string]any{"type": "number"},
				},
				"required": []string{"x"},
			},
			func(_ context.Context, args map[string]any) (any, error) {
				x, ok := toFloat(args["x"])
				if !ok {
					return nil, fmt.Errorf("argument x must be a number")
				}
				if x < 0 {
					return nil, fmt.Errorf("cannot calculate square root of negative number")
				}
				return math.Sqrt(x), nil
			}),
		NewFunctionTool(CalcSolveLinear, "Solve a simple linear equation like '2x + 5 = 15'",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"equation": map[string]any{"type": "string"},
				},
				"required": []string{"equation"},
			},
			func(_ context.Context, args map[string]any) (any, error) {
				eq, _ := args["equation"].(string)
				return SolveLinear(eq)
			}),
	)
}

// linearLHS parses the left side of a linear equation: ax + b or ax - b.
var linearLHS = regexp.MustCompile(`^([+-]?\d*\.?\d*)x([+-]\d+\.?\d*)?$`)

// SolveLinear solves a single-variable linear equation of the form
// "ax + b = c" and returns the solution with the derivation steps.
func SolveLinear(equation string) (*Solution, error) {
	compact := strings.ReplaceAll(equation, " ", "")
	sides := strings.Split(compact, "=")
	if len(sides) != 2 {
		return nil, fmt.Errorf("could not parse equation format")
	}

	rightVal, err := strconv.ParseFloat(sides[1], 64)
	if err != nil {
		return nil, fmt.Errorf("right side is not a number: %q", sides[1])
	}

	m := linearLHS.FindStringSubmatch(sides[0])
	if m == nil {
		return nil, fmt.Errorf("could not parse equation format")
	}

	coefficient := 1.0
	switch m[1] {
	case "", "+":
	case "-":
		coefficient = -1
	default:
		coefficient, err = strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coefficient %q", m[1])
		}
	}
	if coefficient == 0 {
		return nil, fmt.Errorf("no variable term found")
	}

	constant := 0.0
	if m[2] != "" {
		constant, err = strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid constant %q", m[2])
		}
	}

	x := (rightVal - constant) / coefficient

	return &Solution{
		Equation: equation,
		X:        x,
		Steps: []string{
			fmt.Sprintf("Original equation: %s", equation),
			fmt.Sprintf("Isolate x: %gx = %g - (%g)", coefficient, rightVal, constant),
			fmt.Sprintf("Simplify: %gx = %g", coefficient, rightVal-constant),
			fmt.Sprintf("Divide by %g: x = %g", coefficient, x),
		},
	}, nil
}
