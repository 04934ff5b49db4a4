package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/panesgr/chatbot-backend/pkg/config"
)

func TestHealth(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Version = "1.2.3"
	cfg.App.Env = "test"

	rec := httptest.NewRecorder()
	Health(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"status":"ok"`, `"version":"1.2.3"`, `"ai_configured":false`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %s: %s", want, body)
		}
	}
}

func TestStoresListsRegistry(t *testing.T) {
	rec := httptest.NewRecorder()
	Stores().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cholargos") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHomeServesHTML(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Version = "1.2.3"

	rec := httptest.NewRecorder()
	Home(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("content type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "1.2.3") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
