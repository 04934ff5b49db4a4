package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/panesgr/chatbot-backend/internal/sessions"
	"github.com/panesgr/chatbot-backend/pkg/config"
)

func completionServer(t *testing.T, reply string, capture *[]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string           `json:"model"`
			Messages []map[string]any `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding completion request: %v", err)
		}
		if capture != nil {
			*capture = req.Messages
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func TestReplyForwardsTranscript(t *testing.T) {
	var messages []map[string]any
	srv := completionServer(t, "  Φυσικά, μπορώ να βοηθήσω!  ", &messages)
	defer srv.Close()

	client := NewOpenAIWithBaseURL(config.OpenAIConfig{APIKey: "test", Model: "gpt-4o-mini"}, srv.URL)
	history := []sessions.AIMessage{
		{Role: "user", Content: "γεια"},
		{Role: "assistant", Content: "Γεια σας!"},
	}

	got, err := client.Reply(context.Background(), history, "έχετε πάνες;")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if got != "Φυσικά, μπορώ να βοηθήσω!" {
		t.Fatalf("unexpected reply %q", got)
	}

	// system prompt + 2 history turns + new user message
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0]["role"] != "system" {
		t.Fatalf("first message must be the system prompt, got %v", messages[0]["role"])
	}
	system, _ := messages[0]["content"].(string)
	if !strings.Contains(system, "panes.gr") {
		t.Fatal("system prompt must ground the model in the business")
	}
	if messages[3]["content"] != "έχετε πάνες;" {
		t.Fatalf("latest user message missing, got %v", messages[3])
	}
}

func TestReplySurfacesAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"over quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenAIWithBaseURL(config.OpenAIConfig{APIKey: "test", Model: "gpt-4o-mini"}, srv.URL)
	if _, err := client.Reply(context.Background(), nil, "γεια"); err == nil {
		t.Fatal("expected error from failing API")
	}
}
