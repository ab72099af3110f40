// Package llm provides the boundary to text-completion models: provider
// clients for Anthropic, OpenAI, and Ollama, circuit-breaker and rate-limit
// protection, the extraction prompt templates, and tolerant parsers for the
// tag markup and action JSON the models emit.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrNetwork indicates the request never produced a usable response
	// (connection failure, timeout, cancelled context).
	ErrNetwork = errors.New("llm network error")

	// ErrUpstream indicates the provider answered but unusably
	// (non-200 status, malformed body, empty content).
	ErrUpstream = errors.New("llm upstream error")
)

// TextGenerator is the interface for LLM text completion. All extraction and
// command prompts use single-string completion style (not chat); maxTokens
// caps the response budget per call.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	Model() string
}
