// Package tool implements the capability subsystem handlers use to compute
// results: structured functions with schema validated arguments, consistent
// error handling and a static registry resolved at startup.
//
// Tools are registered by name once during construction and the registry is
// read-only afterwards. Lookup is an explicit map resolution of registered
// Tool values, never runtime string-to-method reflection.
package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/taskmesh/internal/util"
)

// Tool defines the interface for the structured capabilities handlers invoke.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case, namespaced like
//     "calculator.add") and descriptions
//   - Define proper JSON schema for parameters
//   - Return errors as values, wrapped in *ToolError where possible
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool does.
	Description() string

	// Parameters returns a JSON schema describing the expected input format,
	// used for argument validation.
	Parameters() map[string]any

	// Call executes the tool with structured arguments. Arguments are
	// validated against the tool's schema before execution.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
