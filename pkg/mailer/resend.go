package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/maayan-lessons/booking-api/pkg/config"
)

// Message is a single outbound email.
type Message struct {
	To      string `json:"-"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ResendClient talks to the Resend HTTP API (https://resend.com).
type ResendClient struct {
	apiKey  string
	from    string
	baseURL string
	http    *http.Client
}

// NewResendClient builds a client from mail configuration. Returns nil when
// mail is disabled; callers treat a nil sender as "notifications off".
func NewResendClient(cfg config.MailConfig) *ResendClient {
	if !cfg.Enabled || cfg.APIKey == "" || cfg.From == "" {
		return nil
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	return &ResendClient{
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		baseURL: baseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendError struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// Send posts the message to the Resend emails endpoint.
func (c *ResendClient) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(resendRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("marshal resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var apiErr resendError
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("resend rejected email (%d): %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("resend rejected email: status %d", resp.StatusCode)
}

var _ Sender = (*ResendClient)(nil)
