package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/panesgr/chatbot-backend/internal/notify"
	"github.com/panesgr/chatbot-backend/pkg/config"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

type stubConversation struct{}

func (stubConversation) Handle(_ context.Context, _, _ string) (string, error) {
	return "Γεια σας!", nil
}

type stubReminders struct{ sent int }

func (s stubReminders) Run(context.Context) (int, error) { return s.sent, nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.Version = "test"
	cfg.App.SupportEmail = "support@panes.gr"
	cfg.Reminders.Secret = "s3cret"
	return cfg
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:       cfg,
		Logger:       logg,
		Conversation: stubConversation{},
		Reminders:    stubReminders{sent: 2},
		Mailer:       notify.Noop{},
	})
}

func TestWebhookRouteRepliesTwiML(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/webhook",
		strings.NewReader("From=whatsapp%3A%2B306900000001&Body=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "<Message>") {
		t.Fatalf("expected TwiML got %s", resp.Body.String())
	}
}

func TestHealthRoute(t *testing.T) {
	router := newTestRouter(testConfig())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicInfoRoutes(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/", "/api/v1/stores", "/api/v1/franchise", "/api/v1/wholesale"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestRemindersRouteRequiresSecret(t *testing.T) {
	router := newTestRouter(testConfig())

	unauthorized := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/run", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, unauthorized)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret got %d", resp.Code)
	}

	authorized := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/run", nil)
	authorized.Header.Set("X-Panesbot-Secret", "s3cret")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authorized)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with secret got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"sent":2`) {
		t.Fatalf("expected sent count got %s", resp.Body.String())
	}
}

func TestLeadsRouteValidates(t *testing.T) {
	router := newTestRouter(testConfig())

	bad := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader("{"))
	bad.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, bad)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}

	good := httptest.NewRequest(http.MethodPost, "/api/v1/leads",
		strings.NewReader(`{"kind":"franchise","name":"Μαρία","phone":"2106800549","email":"m@example.com"}`))
	good.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, good)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 for valid payload got %d", resp.Code)
	}
}
