// Package anthropic reserves the Anthropic slot in the provider registry.
// The Messages API integration has not been written yet; dispatch fails
// with core.ErrNotImplemented rather than silently no-opping.
package anthropic

import (
	"context"
	"fmt"

	"github.com/draftforge/draftforge/src/ai/core"
)

func init() {
	core.RegisterProvider("anthropic", newClient, "claude")
}

type client struct{}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	return &client{}, nil
}

func (c *client) Generate(ctx context.Context, prompt string, opts core.Options) (string, error) {
	return "", fmt.Errorf("anthropic: %w", core.ErrNotImplemented)
}
