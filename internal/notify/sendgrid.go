package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/panesgr/chatbot-backend/pkg/config"
)

const defaultSendgridBaseURL = "https://api.sendgrid.com"

// Sendgrid sends mail through the v3 REST API.
type Sendgrid struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	from       string
}

// SendgridOption configures optional client behavior.
type SendgridOption func(*Sendgrid)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) SendgridOption {
	return func(s *Sendgrid) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithBaseURL overrides the Sendgrid API endpoint.
func WithBaseURL(baseURL string) SendgridOption {
	return func(s *Sendgrid) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			s.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// NewSendgrid builds the Sendgrid mailer from configuration.
func NewSendgrid(cfg config.SendgridConfig, opts ...SendgridOption) *Sendgrid {
	mailer := &Sendgrid{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultSendgridBaseURL,
		apiKey:     cfg.APIKey,
		from:       cfg.DefaultFrom,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(mailer)
		}
	}
	return mailer
}

type sendgridRequest struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
}

type sendgridPersonalization struct {
	To []sendgridAddress `json:"to"`
}

type sendgridAddress struct {
	Email string `json:"email"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send posts a plain-text mail to the v3 send endpoint.
func (s *Sendgrid) Send(ctx context.Context, to, subject, body string) error {
	payload := sendgridRequest{
		Personalizations: []sendgridPersonalization{{To: []sendgridAddress{{Email: to}}}},
		From:             sendgridAddress{Email: s.from},
		Subject:          subject,
		Content:          []sendgridContent{{Type: "text/plain", Value: body}},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding mail payload: %w", err)
	}

	endpoint := s.baseURL + "/v3/mail/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("building mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
