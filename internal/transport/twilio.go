// Package transport sends outbound WhatsApp messages through the Twilio
// Messages API. Inbound traffic arrives on the webhook and is answered
// inline with TwiML; this client exists for bot-initiated messages such as
// pickup reminders.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/panesgr/chatbot-backend/pkg/config"
)

const defaultTwilioBaseURL = "https://api.twilio.com"

// Messenger delivers an outbound message to a WhatsApp identity.
type Messenger interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

// Noop discards outbound messages. Used when Twilio is not configured.
type Noop struct{}

func (Noop) SendWhatsApp(context.Context, string, string) error { return nil }

// Twilio posts messages to the Twilio REST API with basic auth.
type Twilio struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
}

// Option configures optional client behavior.
type Option func(*Twilio)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Twilio) {
		if client != nil {
			t.httpClient = client
		}
	}
}

// WithBaseURL overrides the Twilio API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(t *Twilio) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			t.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// NewTwilio builds the Twilio messenger from configuration.
func NewTwilio(cfg config.TwilioConfig, opts ...Option) *Twilio {
	client := &Twilio{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultTwilioBaseURL,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.WhatsAppNumber,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// SendWhatsApp posts one message. The to identity carries the "whatsapp:"
// prefix Twilio expects; bare numbers are prefixed automatically.
func (t *Twilio) SendWhatsApp(ctx context.Context, to, body string) error {
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	form := url.Values{}
	form.Set("From", t.from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building message request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("twilio status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
