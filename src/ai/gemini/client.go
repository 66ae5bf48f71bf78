package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/draftforge/draftforge/src/ai/core"
	"github.com/draftforge/draftforge/src/webclient"
)

const (
	defaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	defaultModelName = "gemini-pro"
	defaultMaxTokens = 2048
)

func init() {
	core.RegisterProvider("google", newClient, "gemini")
}

type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModelName
	}
	return &client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: webclient.NewDefault(120 * time.Second),
		defaults: core.Options{
			Model:        model,
			Temperature:  cfg.Temperature,
			MaxTokens:    orInt(cfg.MaxTokens, defaultMaxTokens),
			SystemPrompt: cfg.SystemPrompt,
		},
	}, nil
}

func (c *client) Generate(ctx context.Context, prompt string, opts core.Options) (string, error) {
	merged := c.merge(opts)
	payload := c.buildRequestBody(merged, prompt)

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, normalizeModel(merged.Model), c.apiKey)
	bodyBytes, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error: %s", string(body))
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	text := result.FirstText()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

func (c *client) buildRequestBody(opts core.Options, userText string) map[string]interface{} {
	content := map[string]interface{}{
		"role": "user",
		"parts": []map[string]string{
			{"text": userText},
		},
	}

	genConfig := map[string]interface{}{
		"maxOutputTokens": orInt(opts.MaxTokens, defaultMaxTokens),
	}
	if opts.Temperature != 0 {
		genConfig["temperature"] = opts.Temperature
	}

	body := map[string]interface{}{
		"contents":         []map[string]interface{}{content},
		"generationConfig": genConfig,
	}

	if strings.TrimSpace(opts.SystemPrompt) != "" {
		body["systemInstruction"] = map[string]interface{}{
			"parts": []map[string]string{
				{"text": opts.SystemPrompt},
			},
		}
	}

	return body
}

func (c *client) merge(opts core.Options) core.Options {
	out := c.defaults
	if strings.TrimSpace(opts.Model) != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxTokens != 0 {
		out.MaxTokens = opts.MaxTokens
	}
	if strings.TrimSpace(opts.SystemPrompt) != "" {
		out.SystemPrompt = opts.SystemPrompt
	}
	return out
}

func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return "models/" + defaultModelName
	}
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r generateContentResponse) FirstText() string {
	for _, candidate := range r.Candidates {
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
