// Package stillgrateful is a small client for the StillGrateful relay API.
package stillgrateful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the StillGrateful client.
type Config struct {
	// BaseURL is the root URL of the relay server.
	// Example: "https://api.stillgrateful.com"
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with 30s timeout is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Client is the StillGrateful SDK client.
type Client struct {
	cfg Config
}

// NewClient creates a new StillGrateful client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// SendRequest is the payload for sending a gratitude message.
type SendRequest struct {
	// Message is the gratitude message text (at most 2000 characters).
	Message string `json:"message"`
	// RecipientEmail is the recipient's email address.
	RecipientEmail string `json:"recipient_email"`
	// ContextTag is one of the fixed relationship tags, e.g. "old-friend".
	ContextTag string `json:"context_tag"`
	// SenderToken is an opaque client-generated identifier used only for
	// rate limiting. Reuse the same token across sends from one client.
	SenderToken string `json:"sender_token"`
}

// Send submits a gratitude message. A nil error means the message was
// accepted and delivery was attempted. Known rejections are returned as
// ErrRateLimited, ErrMessageRejected or ErrInvalidRequest; inspect the
// *APIError in the chain for the server's reason text.
func (c *Client) Send(ctx context.Context, req SendRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("stillgrateful: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("stillgrateful: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("stillgrateful: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("stillgrateful: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	return parseAPIError(resp.StatusCode, respBody)
}
