// Package model defines the minimal language-model abstraction used by the
// coordinator handler for free-form responses. The interface is completion
// style (one request, one response) because the coordinator only needs a
// single reply; providers live in the openai and anthropic subpackages and a
// MockModel supports tests and offline development.
package model
