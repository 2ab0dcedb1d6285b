package model

import (
	"context"
	"fmt"
)

// Message is a single conversational message in provider-neutral form.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request captures the normalized model input.
type Request struct {
	// Instructions is the system prompt.
	Instructions string `json:"instructions"`
	// Messages is the conversation, oldest first.
	Messages []Message `json:"messages"`
}

// Response is the completed model output.
type Response struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface the coordinator needs to produce a
// free-form reply.
type Model interface {
	Complete(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// It returns canned completions keyed by the last user message, or a default
// response when no canned completion matches.
type MockModel struct {
	info      Info
	responses map[string]string
	fallback  string
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
		fallback:  "mock response",
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// SetFallback sets the response returned when no canned completion matches.
func (m *MockModel) SetFallback(response string) { m.fallback = response }

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (*Response, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	last := req.Messages[len(req.Messages)-1]
	content, ok := m.responses[last.Content]
	if !ok {
		content = m.fallback
	}
	return &Response{Content: content, Model: m.info.Name}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
