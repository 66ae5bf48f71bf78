package core

import "context"

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// Client is a provider-agnostic interface for the one LLM operation we
// need: turn a user prompt into generated copy.
type Client interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
