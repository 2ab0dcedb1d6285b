package core

// Outcome is the result of a single handler invocation. It is owned by the
// caller once returned; handlers must not retain references to it.
type Outcome struct {
	// Handler is the name of the handler that produced this outcome.
	Handler string `json:"handler"`
	// Content is the human-readable response text.
	Content string `json:"content"`
	// Success reports whether the handler completed without error.
	Success bool `json:"success"`
	// Payload carries the structured result (a number, a solution, an
	// analysis), if the handler produced one.
	Payload any `json:"payload,omitempty"`
	// Err holds the failure message when Success is false.
	Err string `json:"error,omitempty"`
}

// NewOutcome builds a successful outcome.
func NewOutcome(handler, content string, payload any) Outcome {
	return Outcome{Handler: handler, Content: content, Success: true, Payload: payload}
}

// ErrorOutcome builds a failed outcome carrying the error message as data.
func ErrorOutcome(handler, errMsg string) Outcome {
	return Outcome{Handler: handler, Content: errMsg, Success: false, Err: errMsg}
}
