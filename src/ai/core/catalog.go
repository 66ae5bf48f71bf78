package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvableModel marks a model identifier that no provider serves.
	ErrUnresolvableModel = errors.New("model matches no provider")
	// ErrNotImplemented marks dispatch to a provider that is declared in
	// the catalog but has no generation integration yet.
	ErrNotImplemented = errors.New("provider not implemented")
)

// Provider is a catalog entry: one upstream LLM vendor together with the
// capability record the dispatcher needs.
type Provider struct {
	Name        string   `json:"name"`    // registry key: openai, groq, google, ...
	Display     string   `json:"display"` // label for the model picker
	Prefixes    []string `json:"-"`       // model-id prefixes routed here
	Models      []string `json:"models"`
	RequiresKey bool     `json:"requiresApiKey"` // false means a process-wide env secret
	Implemented bool     `json:"implemented"`
}

// Catalog is the static provider table. Routing is by model-id prefix;
// exactly one entry matches any valid identifier.
var Catalog = []Provider{
	{
		Name:        "openai",
		Display:     "OpenAI",
		Prefixes:    []string{"gpt"},
		Models:      []string{"gpt-4-turbo-preview", "gpt-4", "gpt-3.5-turbo"},
		RequiresKey: true,
		Implemented: true,
	},
	{
		Name:     "groq",
		Display:  "Groq",
		Prefixes: []string{"llama"},
		Models: []string{
			"llama-3.1-sonar-small-128k-online",
			"llama-3.1-sonar-large-128k-online",
			"llama-3.1-sonar-huge-128k-online",
		},
		RequiresKey: true,
		Implemented: true,
	},
	{
		Name:        "google",
		Display:     "Google",
		Prefixes:    []string{"gemini"},
		Models:      []string{"gemini-pro", "gemini-pro-vision"},
		RequiresKey: false,
		Implemented: true,
	},
	{
		Name:        "anthropic",
		Display:     "Anthropic",
		Prefixes:    []string{"claude"},
		Models:      []string{"claude-3-opus", "claude-3-sonnet", "claude-3-haiku"},
		RequiresKey: true,
		Implemented: false,
	},
	{
		Name:        "deepseek",
		Display:     "DeepSeek",
		Prefixes:    []string{"deepseek"},
		Models:      []string{"deepseek-chat", "deepseek-coder"},
		RequiresKey: true,
		Implemented: false,
	},
}

// ResolveModel maps a model identifier to the provider serving it.
func ResolveModel(model string) (Provider, error) {
	id := strings.ToLower(strings.TrimSpace(model))
	for _, p := range Catalog {
		for _, prefix := range p.Prefixes {
			if strings.HasPrefix(id, prefix) {
				return p, nil
			}
		}
	}
	return Provider{}, fmt.Errorf("%w: %q", ErrUnresolvableModel, model)
}

// ProviderByName looks a provider up by its registry key.
func ProviderByName(name string) (Provider, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Catalog {
		if p.Name == key {
			return p, true
		}
	}
	return Provider{}, false
}
