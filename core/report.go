package core

import (
	"fmt"
	"strings"
)

// StepStatus is the lifecycle state of a single delegated step. Every step
// reaches exactly one terminal status (completed, failed or unhandled)
// before the report is assembled.
type StepStatus string

const (
	// StepPlanned marks a step extracted by the decomposer but not yet executed.
	StepPlanned StepStatus = "planned"
	// StepCompleted marks a step whose handler invocation succeeded.
	StepCompleted StepStatus = "completed"
	// StepFailed marks a step whose handler invocation returned an error outcome.
	StepFailed StepStatus = "failed"
	// StepUnhandled marks a step no specialized handler was available for.
	StepUnhandled StepStatus = "unhandled"
)

// Terminal reports whether the status is one of the three end states.
func (s StepStatus) Terminal() bool {
	return s == StepCompleted || s == StepFailed || s == StepUnhandled
}

// Step is one atomic unit of work extracted from a composite request. The
// decomposer creates steps in Planned state; the executor resolves each to a
// terminal status. Steps are never mutated after the report is assembled.
type Step struct {
	// Index is the 1-based position in decomposer emission order.
	Index int `json:"index"`
	// Description is the step text delegated to a handler.
	Description string `json:"description"`
	// Status is the step's lifecycle state.
	Status StepStatus `json:"status"`
	// HandledBy names the handler the step was delegated to, if any.
	HandledBy string `json:"handled_by,omitempty"`
	// Result holds the handler outcome for completed and failed steps.
	Result *Outcome `json:"result,omitempty"`
	// Err is the captured failure message for failed steps.
	Err string `json:"error,omitempty"`
	// Note carries executor annotations, e.g. why a step went unhandled.
	Note string `json:"note,omitempty"`
}

// Report is the aggregated result of a multi-step delegation pass. It is
// built once per request and immutable once returned: step order always
// equals decomposer emission order, and CompletedSteps always equals the
// number of steps with status StepCompleted.
type Report struct {
	TotalSteps     int    `json:"total_steps"`
	CompletedSteps int    `json:"completed_steps"`
	Steps          []Step `json:"steps"`
}

// Result is the terminal value of a top-level dispatch: either a direct
// single-handler outcome (SingleStep true) or an aggregated report.
type Result struct {
	// HandledBy names the handler for the single-step fast path, or the
	// coordinator for aggregated reports.
	HandledBy string `json:"handled_by"`
	// SingleStep reports whether decomposition was skipped entirely.
	SingleStep bool `json:"single_step"`
	// Outcome is set for single-step dispatches.
	Outcome *Outcome `json:"outcome,omitempty"`
	// Report is set for decomposed, multi-step dispatches.
	Report *Report `json:"report,omitempty"`
}

// Summary returns a short human-readable rendering of the result, suitable
// for conversation history entries.
func (r Result) Summary() string {
	if r.Outcome != nil {
		return r.Outcome.Content
	}
	if r.Report != nil {
		var b strings.Builder
		fmt.Fprintf(&b, "%d/%d steps completed", r.Report.CompletedSteps, r.Report.TotalSteps)
		for _, s := range r.Report.Steps {
			fmt.Fprintf(&b, "\n%d. [%s] %s", s.Index, s.Status, s.Description)
		}
		return b.String()
	}
	return ""
}
