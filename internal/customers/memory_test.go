package customers

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panesgr/chatbot-backend/internal/stores"
)

func TestMemoryStoreFirstContact(t *testing.T) {
	store := NewMemoryStore()

	c, created, err := store.GetOrCreate(context.Background(), "whatsapp:+1000")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created {
		t.Fatal("expected profile creation on first contact")
	}
	if c.StoreID != stores.DefaultStoreID {
		t.Fatalf("new profile must start on the default store, got %q", c.StoreID)
	}

	_, created, err = store.GetOrCreate(context.Background(), "whatsapp:+1000")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("second lookup must not create a profile")
	}
}

func TestMemoryStoreSaveRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c, _, err := store.GetOrCreate(ctx, "whatsapp:+1000")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	c.Name = "Μαρία"
	c.Subscriptions = append(c.Subscriptions, Subscription{
		ID:          "sub-1",
		ProductID:   42,
		ProductName: "Pampers Jumbo",
		Price:       decimal.RequireFromString("22.41"),
		Frequency:   FrequencyWeekly,
		PickupDay:   "Τρίτη",
		NextPickup:  time.Now().AddDate(0, 0, 2),
		Status:      SubscriptionActive,
	})
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _, err := store.GetOrCreate(ctx, "whatsapp:+1000")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if loaded.Name != "Μαρία" {
		t.Fatalf("name not persisted, got %q", loaded.Name)
	}
	if len(loaded.ActiveSubscriptions()) != 1 {
		t.Fatalf("expected one active subscription, got %d", len(loaded.ActiveSubscriptions()))
	}
	if got := loaded.Subscriptions[0].Price.StringFixed(2); got != "22.41" {
		t.Fatalf("subscription price must survive the round trip, got %s", got)
	}
}

func TestMemoryStoreHandsOutCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c, _, _ := store.GetOrCreate(ctx, "whatsapp:+1000")
	c.Name = "dirty"

	again, _, _ := store.GetOrCreate(ctx, "whatsapp:+1000")
	if again.Name != "" {
		t.Fatal("unsaved mutation leaked into the store")
	}
}

func TestMemoryStoreCancelSubscription(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c, _, _ := store.GetOrCreate(ctx, "whatsapp:+1000")
	c.Subscriptions = []Subscription{{ID: "sub-1", Status: SubscriptionActive}}
	if !c.CancelSubscription("sub-1") {
		t.Fatal("expected cancellation of active subscription")
	}
	if c.CancelSubscription("sub-1") {
		t.Fatal("already-cancelled subscription must not cancel again")
	}
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _, _ := store.GetOrCreate(ctx, "whatsapp:+1000")
	if len(loaded.ActiveSubscriptions()) != 0 {
		t.Fatal("cancelled subscription still reported active")
	}
}

func TestMemoryStoreAll(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, identity := range []string{"whatsapp:+1", "whatsapp:+2", "whatsapp:+3"} {
		if _, _, err := store.GetOrCreate(ctx, identity); err != nil {
			t.Fatalf("GetOrCreate(%s): %v", identity, err)
		}
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(all))
	}
}
