// Package generator dispatches a prompt to the provider serving the
// requested model and persists the normalized result.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/draftforge/draftforge/src/ai/core"
	"github.com/draftforge/draftforge/src/api/storage"
	"github.com/draftforge/draftforge/src/api/types"
	"github.com/draftforge/draftforge/src/contenttype"
)

var (
	// ErrCredentialMissing means the provider needs a stored API key and
	// the caller has none. Actionable by the user, never retried here.
	ErrCredentialMissing = errors.New("provider credential missing")
	// ErrGenerationFailed wraps any upstream provider failure, including
	// malformed or empty responses. Nothing is persisted on this path.
	ErrGenerationFailed = errors.New("content generation failed")
)

const (
	systemPromptTemplate = "Generate %s content that is SEO-optimized and human-like."
	titleLimit           = 50
)

// ClientFactory builds a provider client; tests swap it out.
type ClientFactory func(core.FactoryConfig) (core.Client, error)

// EventFunc is notified after an item is persisted. Best-effort.
type EventFunc func(ctx context.Context, item *types.ContentItem)

type Service struct {
	keys      storage.APIKeys
	content   storage.Content
	geminiKey string
	newClient ClientFactory
	sanitizer *bluemonday.Policy
	publish   EventFunc
}

type Option func(*Service)

// WithClientFactory replaces the provider registry lookup.
func WithClientFactory(f ClientFactory) Option {
	return func(s *Service) { s.newClient = f }
}

// WithEventFunc registers a post-persist notification hook.
func WithEventFunc(f EventFunc) Option {
	return func(s *Service) { s.publish = f }
}

func New(keys storage.APIKeys, content storage.Content, geminiKey string, opts ...Option) *Service {
	s := &Service{
		keys:      keys,
		content:   content,
		geminiKey: geminiKey,
		newClient: core.NewClient,
		sanitizer: contentPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate resolves the provider for model, invokes it with the classified
// system prompt, and persists exactly one ContentItem on success. Failures
// surface synchronously; there is no retry and no partial save.
func (s *Service) Generate(ctx context.Context, userID uint64, prompt, model string) (*types.ContentItem, error) {
	provider, err := core.ResolveModel(model)
	if err != nil {
		return nil, err
	}

	// Stub providers fail deterministically, before any credential lookup.
	if !provider.Implemented {
		return nil, fmt.Errorf("%s models: %w", provider.Display, core.ErrNotImplemented)
	}

	apiKey := s.geminiKey
	if provider.RequiresKey {
		key, err := s.keys.Get(ctx, userID, provider.Name)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: no %s API key stored", ErrCredentialMissing, provider.Display)
		}
		if err != nil {
			return nil, err
		}
		apiKey = key.APIKey
	}

	kind := contenttype.Detect(prompt)

	client, err := s.newClient(core.FactoryConfig{
		Provider:     provider.Name,
		APIKey:       apiKey,
		Model:        model,
		SystemPrompt: fmt.Sprintf(systemPromptTemplate, kind),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text, err := client.Generate(ctx, prompt, core.Options{Model: model})
	if err != nil {
		if errors.Is(err, core.ErrNotImplemented) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response from %s", ErrGenerationFailed, provider.Display)
	}

	item := &types.ContentItem{
		UserID:  userID,
		Title:   truncate(prompt, titleLimit),
		Content: s.sanitizer.Sanitize(text),
		Type:    string(kind),
		Model:   model,
	}
	if err := s.content.Create(ctx, item); err != nil {
		return nil, err
	}

	if s.publish != nil {
		s.publish(ctx, item)
	}
	return item, nil
}

// contentPolicy keeps basic markdown-rendered formatting and strips
// anything active that a model might emit.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AllowElements("p", "br", "strong", "em", "code", "pre", "blockquote")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("href").OnElements("a")
	p.RequireParseableURLs(true)
	return p
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
