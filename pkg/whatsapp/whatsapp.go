// Package whatsapp sends WhatsApp text messages through a Messages-style
// HTTP API with basic-auth credentials, implementing
// notify.MessagingTransport.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"mesa-notification-service/internal/notify"
)

type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	apiSecret  string
	limiter    *rate.Limiter
}

// NewClient builds a WhatsApp messaging client. ratePerSecond caps outbound
// messages so a burst of mesa events cannot trip the provider's limits.
func NewClient(endpoint, apiKey, apiSecret string, ratePerSecond int) *Client {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	return &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		limiter:    rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
	}
}

func (c *Client) Send(ctx context.Context, msg notify.TextMessage) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("whatsapp rate limit wait: %w", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message for %s: %w", msg.To, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", msg.To, err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", msg.To, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("messages API returned status %d for %s", resp.StatusCode, msg.To)
	}
	return nil
}
