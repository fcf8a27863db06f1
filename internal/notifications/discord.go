package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers an operator-facing alert. Implementations must treat
// delivery as best-effort; callers never fail the originating request on
// a send error.
type Sender interface {
	Send(ctx context.Context, title, body string) error
}

// DiscordSender posts alerts to a Discord webhook. A sender with an empty
// webhook URL is a no-op, so the service runs fine without one configured.
type DiscordSender struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordSender creates a DiscordSender for the given webhook URL.
func NewDiscordSender(webhookURL string) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NewDiscordSenderWithClient creates a DiscordSender with a custom HTTP
// client, used by tests.
func NewDiscordSenderWithClient(webhookURL string, client *http.Client) *DiscordSender {
	return &DiscordSender{webhookURL: webhookURL, client: client}
}

type discordPayload struct {
	Content string `json:"content"`
}

// Send posts the alert to the webhook. Returns nil without doing anything
// when no webhook URL is configured.
func (s *DiscordSender) Send(ctx context.Context, title, body string) error {
	if s.webhookURL == "" {
		return nil
	}

	payload := discordPayload{Content: fmt.Sprintf("**%s**\n%s", title, body)}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
