// Package social pushes generated copy to external platforms. Discord goes
// through the bot session; other platforms are opaque webhook pass-throughs.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/draftforge/draftforge/src/webclient"
)

// ErrUnsupportedPlatform means no publishing target is configured for the
// requested platform.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

type Publisher struct {
	discord        *discordgo.Session
	discordChannel string
	webhooks       map[string]string
	httpClient     *http.Client
}

// New builds a publisher from whatever targets are configured; missing
// targets simply reject their platform at post time.
func New(botToken, channelID string, webhooks map[string]string) (*Publisher, error) {
	p := &Publisher{
		discordChannel: channelID,
		webhooks:       webhooks,
		httpClient:     webclient.NewDefault(30 * time.Second),
	}
	if botToken != "" {
		s, err := discordgo.New("Bot " + botToken)
		if err != nil {
			return nil, fmt.Errorf("discord: %w", err)
		}
		p.discord = s
	}
	return p, nil
}

// Post publishes content to one platform. Delivery is fire-and-acknowledge;
// the platform's own processing is not verified.
func (p *Publisher) Post(ctx context.Context, platform, content string) error {
	switch key := strings.ToLower(strings.TrimSpace(platform)); key {
	case "discord":
		if p.discord == nil || p.discordChannel == "" {
			return fmt.Errorf("%w: discord publishing not configured", ErrUnsupportedPlatform)
		}
		_, err := p.discord.ChannelMessageSend(p.discordChannel, content, discordgo.WithContext(ctx))
		return err
	default:
		url := p.webhooks[key]
		if url == "" {
			return fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
		}
		return p.postWebhook(ctx, url, content)
	}
}

func (p *Publisher) postWebhook(ctx context.Context, url, content string) error {
	b, _ := json.Marshal(map[string]string{"content": content})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
