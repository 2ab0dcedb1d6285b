package executor

import "github.com/hupe1980/taskmesh/core"

// Merge folds executed steps into a report. Completed steps are counted;
// failed and unhandled steps are kept in place so the report preserves the
// original step order.
func Merge(steps []core.Step) core.Report {
	completed := 0
	for _, s := range steps {
		if s.Status == core.StepCompleted {
			completed++
		}
	}
	return core.Report{
		TotalSteps:     len(steps),
		CompletedSteps: completed,
		Steps:          steps,
	}
}
