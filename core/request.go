package core

import "strings"

// Request is an immutable user request: the raw text plus an optional
// free-form context mapping. Requests are created once at the system
// boundary per turn and are read-only through routing, decomposition and
// execution. The context map is defensively copied on construction and on
// access so no component can mutate it through a shared reference.
type Request struct {
	text    string
	context map[string]any
}

// NewRequest creates a Request from raw text and optional context values.
func NewRequest(text string, context map[string]any) Request {
	var ctx map[string]any
	if len(context) > 0 {
		ctx = make(map[string]any, len(context))
		for k, v := range context {
			ctx[k] = v
		}
	}
	return Request{text: text, context: ctx}
}

// Text returns the raw request text.
func (r Request) Text() string { return r.text }

// Context returns a copy of the request's context mapping.
func (r Request) Context() map[string]any {
	if r.context == nil {
		return nil
	}
	cp := make(map[string]any, len(r.context))
	for k, v := range r.context {
		cp[k] = v
	}
	return cp
}

// ContextValue returns a single context value and whether it was set.
func (r Request) ContextValue(key string) (any, bool) {
	v, ok := r.context[key]
	return v, ok
}

// IsEmpty reports whether the request text is empty or whitespace only.
func (r Request) IsEmpty() bool { return strings.TrimSpace(r.text) == "" }

// WithText returns a copy of the request carrying new text but the same
// context mapping. Used when delegating a single extracted step.
func (r Request) WithText(text string) Request {
	return Request{text: text, context: r.context}
}
