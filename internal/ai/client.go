// Package ai is the assistant passthrough used when a customer opts out of
// the menu. The conversation layer owns mode switching and history bounds;
// this package only turns a transcript into the next reply.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/panesgr/chatbot-backend/internal/sessions"
	"github.com/panesgr/chatbot-backend/internal/stores"
	"github.com/panesgr/chatbot-backend/pkg/config"
)

// Client produces the next assistant reply for a running transcript.
type Client interface {
	Reply(ctx context.Context, history []sessions.AIMessage, userText string) (string, error)
}

// OpenAI backs the passthrough with the chat completions API.
type OpenAI struct {
	api   *openai.Client
	model string
}

// NewOpenAI constructs the OpenAI-backed client. Callers must check
// cfg.Configured() first; an empty key yields a client that always errors.
func NewOpenAI(cfg config.OpenAIConfig) *OpenAI {
	return &OpenAI{
		api:   openai.NewClient(cfg.APIKey),
		model: cfg.Model,
	}
}

// NewOpenAIWithBaseURL is NewOpenAI pointed at a non-default API endpoint.
func NewOpenAIWithBaseURL(cfg config.OpenAIConfig, baseURL string) *OpenAI {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = baseURL
	return &OpenAI{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// Reply sends the system prompt, the rolling transcript, and the latest user
// message, and returns the assistant's answer.
func (c *OpenAI) Reply(ctx context.Context, history []sessions.AIMessage, userText string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt(),
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// systemPrompt grounds the model in the business: stores, hours, and the
// active discount programs. Replies must stay in Greek and on topic.
func systemPrompt() string {
	var b strings.Builder
	b.WriteString("Είσαι ο βοηθός εξυπηρέτησης του panes.gr, καταστήματος βρεφικών ειδών. ")
	b.WriteString("Απαντάς πάντα στα ελληνικά, σύντομα και ευγενικά, μόνο για θέματα του καταστήματος. ")
	b.WriteString("Καταστήματα παραλαβής:\n")
	for _, s := range stores.All() {
		b.WriteString("- ")
		b.WriteString(s.Name)
		b.WriteString(", ")
		b.WriteString(s.Address)
		b.WriteString(" (")
		b.WriteString(s.Hours.Weekdays)
		b.WriteString(" καθημερινές, Σάββατο ")
		b.WriteString(s.Hours.Saturday)
		b.WriteString(")")
		if s.DriveThrough {
			b.WriteString(" — διαθέτει drive-through παραλαβή")
		}
		b.WriteString("\n")
	}
	b.WriteString("Προγράμματα: έκπτωση 10% σε συνδρομές επαναλαμβανόμενης παραλαβής, ")
	b.WriteString("έκπτωση 20% σε επαγγελματίες για επιλεγμένα προϊόντα. ")
	b.WriteString("Τα βρεφικά γάλατα εξαιρούνται από κάθε έκπτωση βάσει νομοθεσίας. ")
	b.WriteString("Αν δεν γνωρίζεις κάτι, παρέπεμψε στο τηλέφωνο " + stores.Default().Phone + ".")
	return b.String()
}
