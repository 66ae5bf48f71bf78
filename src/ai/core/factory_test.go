package core

import (
	"context"
	"testing"
)

type staticClient struct {
	text string
}

func (s staticClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return s.text, nil
}

func TestRegisterProviderAliases(t *testing.T) {
	RegisterProvider("factorytest", func(cfg FactoryConfig) (Client, error) {
		return staticClient{text: cfg.Model}, nil
	}, "factoryalias")

	for _, name := range []string{"factorytest", "FactoryTest", "factoryalias"} {
		client, err := NewClient(FactoryConfig{Provider: name, Model: "m1"})
		if err != nil {
			t.Fatalf("NewClient(%q): %v", name, err)
		}
		got, _ := client.Generate(context.Background(), "x", Options{})
		if got != "m1" {
			t.Errorf("NewClient(%q) config not threaded through, got %q", name, got)
		}
	}
}

func TestNewClientUnregistered(t *testing.T) {
	if _, err := NewClient(FactoryConfig{Provider: "nope"}); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}
