// Package deepseek reserves the DeepSeek slot in the provider registry.
// Dispatch fails with core.ErrNotImplemented until the integration lands.
package deepseek

import (
	"context"
	"fmt"

	"github.com/draftforge/draftforge/src/ai/core"
)

func init() {
	core.RegisterProvider("deepseek", newClient)
}

type client struct{}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	return &client{}, nil
}

func (c *client) Generate(ctx context.Context, prompt string, opts core.Options) (string, error) {
	return "", fmt.Errorf("deepseek: %w", core.ErrNotImplemented)
}
