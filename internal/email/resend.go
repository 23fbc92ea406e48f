package email

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

// ResendSender implements Sender using the Resend transactional email API.
type ResendSender struct {
	apiKey      string
	baseURL     string
	fromAddress string
	fromName    string
	client      *http.Client
}

// ResendConfig holds the configuration for the Resend email sender.
type ResendConfig struct {
	// APIKey is the Resend API key.
	APIKey string
	// BaseURL is the API root; defaults to the public Resend endpoint.
	BaseURL string
	// FromAddress is the email address emails are sent from.
	FromAddress string
	// FromName is the display name for the sender.
	FromName string
}

// NewResendSender creates a new ResendSender.
func NewResendSender(cfg ResendConfig) (*ResendSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("resend: API key is required")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("resend: from address is required")
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	return &ResendSender{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		client:      &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// sendEmailRequest matches the Resend send email API request body.
type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// resendError matches the Resend API error envelope.
type resendError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Name       string `json:"name"`
}

// Send sends an email via POST /emails. No retries; one outbound
// attempt per call.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	from := s.fromAddress
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}

	payload := sendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTMLBody,
		Text:    msg.TextBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("resend: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr resendError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("resend: API error %d [%s]: %s", resp.StatusCode, apiErr.Name, apiErr.Message)
		}
		return fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}

	return nil
}
