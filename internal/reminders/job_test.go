package reminders

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panesgr/chatbot-backend/internal/customers"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

type recordingMessenger struct {
	sent map[string]string
	fail bool
}

func (m *recordingMessenger) SendWhatsApp(_ context.Context, to, body string) error {
	if m.fail {
		return context.DeadlineExceeded
	}
	if m.sent == nil {
		m.sent = map[string]string{}
	}
	m.sent[to] = body
	return nil
}

func seedCustomer(t *testing.T, store customers.Store, identity string, subs ...customers.Subscription) {
	t.Helper()
	c, _, err := store.GetOrCreate(context.Background(), identity)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	c.Subscriptions = subs
	if err := store.Save(context.Background(), c); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func newJob(store customers.Store, m *recordingMessenger, now time.Time) *Job {
	job := New(store, m, logger.New(logger.Options{Output: io.Discard}))
	job.now = func() time.Time { return now }
	return job
}

func TestRunSendsForTomorrowOnly(t *testing.T) {
	store := customers.NewMemoryStore()
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	sub := func(next time.Time, status customers.SubscriptionStatus) customers.Subscription {
		return customers.Subscription{
			ID:          "sub-" + next.Format("0102"),
			ProductName: "Pampers Jumbo",
			Price:       decimal.RequireFromString("22.41"),
			Frequency:   customers.FrequencyWeekly,
			PickupDay:   "Τρίτη",
			NextPickup:  next,
			Status:      status,
		}
	}
	seedCustomer(t, store, "whatsapp:+1", sub(now.AddDate(0, 0, 1), customers.SubscriptionActive))
	seedCustomer(t, store, "whatsapp:+2", sub(now.AddDate(0, 0, 3), customers.SubscriptionActive))
	seedCustomer(t, store, "whatsapp:+3", sub(now.AddDate(0, 0, 1), customers.SubscriptionCancelled))

	m := &recordingMessenger{}
	sent, err := newJob(store, m, now).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 reminder, got %d", sent)
	}
	body, ok := m.sent["whatsapp:+1"]
	if !ok {
		t.Fatalf("reminder must go to the due customer, got %v", m.sent)
	}
	if !strings.Contains(body, "Pampers Jumbo") || !strings.Contains(body, "22.41€") {
		t.Fatalf("reminder must name product and price, got %q", body)
	}
}

func TestRunAdvancesOverduePickups(t *testing.T) {
	store := customers.NewMemoryStore()
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	seedCustomer(t, store, "whatsapp:+1", customers.Subscription{
		ID:          "sub-1",
		ProductName: "Pampers Jumbo",
		Price:       decimal.RequireFromString("22.41"),
		Frequency:   customers.FrequencyWeekly,
		NextPickup:  now.AddDate(0, 0, -13), // two cycles behind
		Status:      customers.SubscriptionActive,
	})

	m := &recordingMessenger{}
	if _, err := newJob(store, m, now).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	c, _, _ := store.GetOrCreate(context.Background(), "whatsapp:+1")
	got := c.Subscriptions[0].NextPickup
	if got.Before(now) && !got.Equal(now) {
		t.Fatalf("overdue pickup must advance past today, got %s", got)
	}
}

func TestRunSurvivesSendFailures(t *testing.T) {
	store := customers.NewMemoryStore()
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	seedCustomer(t, store, "whatsapp:+1", customers.Subscription{
		ID:         "sub-1",
		Frequency:  customers.FrequencyWeekly,
		Price:      decimal.RequireFromString("10.00"),
		NextPickup: now.AddDate(0, 0, 1),
		Status:     customers.SubscriptionActive,
	})

	m := &recordingMessenger{fail: true}
	sent, err := newJob(store, m, now).Run(context.Background())
	if err != nil {
		t.Fatalf("send failures must not abort the sweep: %v", err)
	}
	if sent != 0 {
		t.Fatalf("failed sends must not count, got %d", sent)
	}
}
