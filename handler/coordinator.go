package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/internal/util"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/model"
)

// CoordinatorName is the registered name of the coordinator handler.
const CoordinatorName = "coordinator"

const coordinatorInstructions = `You are a task coordinator. The user's request did not match any
specialized capability. Answer helpfully and, when relevant, point the user
towards the available capabilities.`

const coordinatorTemplate = `I could not match your request to a specialized capability.

Your request: {{.Request}}

Available capabilities:
{{range .Capabilities}}  - {{.Name}}: {{.Description}}
{{end}}
Try something more specific, like "Calculate the sum of 15 and 27" or "Analyze the sentiment of this text: ...".`

// CoordinatorOptions holds configuration for the coordinator handler.
type CoordinatorOptions struct {
	// Logger is the logger to use. Defaults to a no-op logger.
	Logger logging.Logger
	// Model, when set, generates free-form replies for unmatched requests.
	// When the model call fails the coordinator falls back to its static
	// capability listing, so a flaky model never breaks the fallback path.
	Model model.Model
}

// Coordinator is the fallback handler. It accepts every request and never
// fails: when no specialized handler claims a request, the coordinator
// replies with the list of available capabilities, or with a model-generated
// answer when a model is configured.
type Coordinator struct {
	capabilities func() []core.HandlerInfo
	model        model.Model
	logger       logging.Logger
}

// NewCoordinator creates the fallback handler. The capabilities function is
// re-evaluated per request so late handler registrations show up in replies;
// it may be nil when no capability listing is available.
func NewCoordinator(capabilities func() []core.HandlerInfo, optFns ...func(o *CoordinatorOptions)) *Coordinator {
	opts := CoordinatorOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Coordinator{capabilities: capabilities, model: opts.Model, logger: opts.Logger}
}

// Name implements core.Handler.
func (h *Coordinator) Name() string { return CoordinatorName }

// Description implements core.Handler.
func (h *Coordinator) Description() string {
	return "Task coordinator that answers requests no specialized handler claims"
}

// CanHandle implements core.Handler. The coordinator accepts everything.
func (h *Coordinator) CanHandle(core.Request) bool { return true }

// Process implements core.Handler. The returned outcome always reports
// success.
func (h *Coordinator) Process(ctx context.Context, req core.Request) core.Outcome {
	if req.IsEmpty() {
		return core.NewOutcome(CoordinatorName,
			"Tell me what you need. I can route math and text requests to specialized capabilities.", nil)
	}

	if h.model != nil {
		if out, ok := h.completeWithModel(ctx, req); ok {
			return out
		}
	}
	return h.listCapabilities(req)
}

func (h *Coordinator) completeWithModel(ctx context.Context, req core.Request) (core.Outcome, bool) {
	resp, err := h.model.Complete(ctx, model.Request{
		Instructions: coordinatorInstructions,
		Messages:     []model.Message{{Role: "user", Content: req.Text()}},
	})
	if err != nil {
		h.logger.Warn("coordinator model call failed, using capability listing", "error", err)
		return core.Outcome{}, false
	}
	return core.NewOutcome(CoordinatorName, resp.Content, nil), true
}

func (h *Coordinator) listCapabilities(req core.Request) core.Outcome {
	var infos []core.HandlerInfo
	if h.capabilities != nil {
		infos = h.capabilities()
	}

	content, err := util.RenderTemplate(coordinatorTemplate, map[string]any{
		"Request":      req.Text(),
		"Capabilities": infos,
	})
	if err != nil {
		// Degrade to a plain listing rather than failing the fallback path.
		h.logger.Warn("coordinator template failed", "error", err)
		names := make([]string, len(infos))
		for i, info := range infos {
			names[i] = info.Name
		}
		content = fmt.Sprintf("I could not match your request to a specialized capability. Available: %s", strings.Join(names, ", "))
	}
	return core.NewOutcome(CoordinatorName, content, infos)
}
