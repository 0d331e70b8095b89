// Package llm abstracts the model backend that turns a requirements prompt
// into a data model response.
package llm

import "context"

// Client is the minimal completion interface the pipeline needs. The
// response is the raw model text, fences and all; cleanup happens upstream.
type Client interface {
	// CompleteWithSystem sends a system and user prompt pair and returns
	// the model's text response.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
