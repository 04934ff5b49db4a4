package conversation

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panesgr/chatbot-backend/internal/catalog"
	"github.com/panesgr/chatbot-backend/internal/customers"
	"github.com/panesgr/chatbot-backend/internal/sessions"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

type stubCatalog struct {
	mu        sync.Mutex
	lastQuery string
	lastTag   string
	lastLimit int
	products  []catalog.Product
}

func (c *stubCatalog) Search(_ context.Context, query string, limit int) []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastQuery = query
	c.lastLimit = limit
	return c.products
}

func (c *stubCatalog) Popular(_ context.Context, limit int) []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastLimit = limit
	return c.products
}

func (c *stubCatalog) OnSale(_ context.Context, limit int) []catalog.Product {
	return c.Popular(context.Background(), limit)
}

func (c *stubCatalog) ByTag(_ context.Context, tagSlug string, limit int) []catalog.Product {
	c.mu.Lock()
	c.lastTag = tagSlug
	c.mu.Unlock()
	return c.Popular(context.Background(), limit)
}

type stubMailer struct {
	mu    sync.Mutex
	sends []string
}

func (m *stubMailer) Send(_ context.Context, to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, to+": "+subject)
	return nil
}

type fixture struct {
	service   *Service
	catalog   *stubCatalog
	mailer    *stubMailer
	customers *customers.MemoryStore
	sessions  *sessions.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat := &stubCatalog{}
	mailer := &stubMailer{}
	custStore := customers.NewMemoryStore()
	sessStore := sessions.NewMemoryStore(time.Hour)

	service, err := New(Deps{
		Customers: custStore,
		Sessions:  sessStore,
		Catalog:   cat,
		Mailer:    mailer,
		Logger:    logger.New(logger.Options{Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	service.newID = func() string { return "fixed-id" }
	service.now = func() time.Time {
		return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC) // a Monday
	}
	return &fixture{service: service, catalog: cat, mailer: mailer, customers: custStore, sessions: sessStore}
}

func (f *fixture) send(t *testing.T, identity, text string) string {
	t.Helper()
	reply, err := f.service.Handle(context.Background(), identity, text)
	if err != nil {
		t.Fatalf("Handle(%q): %v", text, err)
	}
	return reply
}

func (f *fixture) session(t *testing.T, identity string) *sessions.Session {
	t.Helper()
	s, err := f.sessions.GetOrCreate(context.Background(), identity)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	return s
}

func (f *fixture) customer(t *testing.T, identity string) *customers.Customer {
	t.Helper()
	c, _, err := f.customers.GetOrCreate(context.Background(), identity)
	if err != nil {
		t.Fatalf("customer lookup: %v", err)
	}
	return c
}

func testProducts(n int) []catalog.Product {
	products := make([]catalog.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, catalog.Product{
			ID:          int64(i),
			Name:        fmt.Sprintf("Pampers No%d", i),
			Price:       decimal.NewFromInt(int64(10 + i)),
			StockStatus: "instock",
		})
	}
	return products
}

func TestFirstContactCreatesCustomerOnce(t *testing.T) {
	f := newFixture(t)

	reply := f.send(t, "whatsapp:+1000", "γεια")
	if !strings.Contains(reply, "Καλωσήρθατε") {
		t.Fatalf("first contact must greet, got %q", reply)
	}
	if !strings.Contains(reply, "Κεντρικό μενού") {
		t.Fatal("first contact must show the menu")
	}

	f.send(t, "whatsapp:+1000", "7")
	all, _ := f.customers.All(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected exactly one customer, got %d", len(all))
	}
}

func TestMenuCommandWinsFromAnyState(t *testing.T) {
	f := newFixture(t)
	f.catalog.products = testProducts(3)
	identity := "whatsapp:+1000"

	f.send(t, identity, "menu")
	f.send(t, identity, "1")
	f.send(t, identity, "pampers")
	if f.session(t, identity).State != sessions.StateProductList {
		t.Fatal("setup failed to reach product_list")
	}

	reply := f.send(t, identity, "μενού")
	if !strings.Contains(reply, "Κεντρικό μενού") {
		t.Fatalf("global menu command must return the menu, got %q", reply)
	}
	s := f.session(t, identity)
	if s.State != sessions.StateMenu {
		t.Fatalf("expected menu state, got %q", s.State)
	}
	if s.Results != nil || s.Draft != nil {
		t.Fatal("menu command must clear scratch state")
	}
}

func TestUnknownMenuChoiceReprompts(t *testing.T) {
	f := newFixture(t)
	identity := "whatsapp:+1000"

	f.send(t, identity, "menu")
	reply := f.send(t, identity, "99")
	if !strings.Contains(reply, "1 έως 11") {
		t.Fatalf("invalid choice must state the valid range, got %q", reply)
	}
	if f.session(t, identity).State != sessions.StateMenu {
		t.Fatal("invalid choice must not leave the menu state")
	}
}

func TestFullSubscriptionScenario(t *testing.T) {
	f := newFixture(t)
	f.catalog.products = []catalog.Product{
		{ID: 1, Name: "Pampers Jumbo Νο4", Price: decimal.RequireFromString("24.90"), StockStatus: "instock"},
		{ID: 2, Name: "Pampers Mini Νο2", Price: decimal.RequireFromString("12.50"), StockStatus: "instock"},
	}
	identity := "+1000"

	reply := f.send(t, identity, "menu")
	if !strings.Contains(reply, "Κεντρικό μενού") {
		t.Fatalf("expected main menu, got %q", reply)
	}

	f.send(t, identity, "1")
	if f.session(t, identity).State != sessions.StateSearch {
		t.Fatal("choice 1 must enter search")
	}

	reply = f.send(t, identity, "pampers")
	if f.catalog.lastQuery != "pampers" || f.catalog.lastLimit != 20 {
		t.Fatalf("catalog must be queried with (pampers, 20), got (%q, %d)", f.catalog.lastQuery, f.catalog.lastLimit)
	}
	if !strings.Contains(reply, "Pampers Jumbo Νο4") || !strings.Contains(reply, "24.90€") {
		t.Fatalf("listing must show both items with prices, got %q", reply)
	}
	if !strings.Contains(reply, "12.50€") {
		t.Fatal("second item price missing from the listing")
	}
	if f.session(t, identity).State != sessions.StateProductList {
		t.Fatal("search results must enter product_list")
	}

	f.send(t, identity, "1")
	if f.session(t, identity).State != sessions.StateProductChoice {
		t.Fatal("selection must enter product_choice")
	}

	f.send(t, identity, "2")
	s := f.session(t, identity)
	if s.State != sessions.StateSubscriptionFrequency {
		t.Fatalf("subscription choice must enter frequency step, got %q", s.State)
	}
	if s.Draft == nil || !s.Draft.FrequencyShown {
		t.Fatal("frequency prompt must be marked as shown after entry")
	}
	if s.Draft.Price.StringFixed(2) != "22.41" {
		t.Fatalf("draft must carry the discounted price, got %s", s.Draft.Price)
	}

	f.send(t, identity, "1") // weekly
	f.send(t, identity, "1") // Monday
	reply = f.send(t, identity, "1")
	if !strings.Contains(reply, "ενεργοποιήθηκε") {
		t.Fatalf("confirmation must activate the subscription, got %q", reply)
	}

	c := f.customer(t, identity)
	subs := c.ActiveSubscriptions()
	if len(subs) != 1 {
		t.Fatalf("exactly one subscription must exist, got %d", len(subs))
	}
	sub := subs[0]
	if sub.Price.StringFixed(2) != "22.41" {
		t.Fatalf("price must freeze at confirmation, got %s", sub.Price)
	}
	// Confirmed on a Monday for Monday pickup: next pickup is next week.
	if got := sub.NextPickup.Format("2006-01-02"); got != "2026-08-31" {
		t.Fatalf("same-weekday pickup must roll a week ahead, got %s", got)
	}

	// Catalog price changes must not touch the stored subscription.
	f.catalog.products[0].Price = decimal.RequireFromString("99.99")
	c = f.customer(t, identity)
	if c.Subscriptions[0].Price.StringFixed(2) != "22.41" {
		t.Fatal("stored subscription price must not track the catalog")
	}
}

func TestAIModeFailureFallsBackToMenu(t *testing.T) {
	f := newFixture(t)
	f.service.assistant = failingAssistant{}
	identity := "whatsapp:+1000"

	f.send(t, identity, "menu")
	reply := f.send(t, identity, "βοηθός")
	if !strings.Contains(reply, "βοηθός") && !strings.Contains(reply, "ρωτήστε") {
		t.Fatalf("expected assistant greeting, got %q", reply)
	}
	if !f.session(t, identity).AIMode {
		t.Fatal("assistant command must enable AI mode")
	}

	reply = f.send(t, identity, "έχετε πάνες;")
	if !strings.Contains(reply, "Κεντρικό μενού") {
		t.Fatalf("backend failure must fall back to the menu, got %q", reply)
	}
	if f.session(t, identity).AIMode {
		t.Fatal("backend failure must disable AI mode")
	}
}

func TestAIModeBoundsHistory(t *testing.T) {
	f := newFixture(t)
	f.service.assistant = echoAssistant{}
	f.service.historyTurns = 2
	identity := "whatsapp:+1000"

	f.send(t, identity, "menu")
	f.send(t, identity, "ai")
	for i := 0; i < 5; i++ {
		f.send(t, identity, fmt.Sprintf("ερώτηση %d", i))
	}

	history := f.session(t, identity).AIHistory
	if len(history) != 4 {
		t.Fatalf("history must hold at most 2 turns (4 messages), got %d", len(history))
	}
	if history[0].Content != "ερώτηση 3" {
		t.Fatalf("oldest turns must be dropped first, got %q", history[0].Content)
	}
}

type failingAssistant struct{}

func (failingAssistant) Reply(context.Context, []sessions.AIMessage, string) (string, error) {
	return "", fmt.Errorf("backend down")
}

type echoAssistant struct{}

func (echoAssistant) Reply(_ context.Context, _ []sessions.AIMessage, text string) (string, error) {
	return "echo: " + text, nil
}
