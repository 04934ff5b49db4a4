// Package reminders implements the pickup-reminder sweep: every customer
// with an active subscription whose next pickup falls tomorrow gets one
// WhatsApp message. The sweep runs from the cron worker and from the
// authenticated trigger endpoint.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/panesgr/chatbot-backend/internal/customers"
	"github.com/panesgr/chatbot-backend/internal/transport"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

// Job is one reminder sweep over the customer store.
type Job struct {
	customers customers.Store
	messenger transport.Messenger
	logg      *logger.Logger
	now       func() time.Time
}

// New constructs the sweep. A nil messenger downgrades to a no-op sender,
// so the sweep still advances overdue pickups.
func New(store customers.Store, messenger transport.Messenger, logg *logger.Logger) *Job {
	if messenger == nil {
		messenger = transport.Noop{}
	}
	return &Job{
		customers: store,
		messenger: messenger,
		logg:      logg,
		now:       time.Now,
	}
}

// Run scans all customers and returns the number of reminders sent. A
// failed send is logged and skipped; it never aborts the sweep.
func (j *Job) Run(ctx context.Context) (int, error) {
	all, err := j.customers.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing customers: %w", err)
	}

	now := j.now()
	tomorrow := now.AddDate(0, 0, 1)
	sent := 0

	for _, customer := range all {
		changed := false
		for i := range customer.Subscriptions {
			sub := &customer.Subscriptions[i]
			if sub.Status != customers.SubscriptionActive {
				continue
			}
			if rollForward(sub, now) {
				changed = true
			}
			if !sameDay(sub.NextPickup, tomorrow) {
				continue
			}
			if err := j.messenger.SendWhatsApp(ctx, customer.Identity, reminderText(sub)); err != nil {
				j.logg.Error(j.logg.WithIdentity(ctx, customer.Identity), "sending pickup reminder", err)
				continue
			}
			sent++
		}
		if changed {
			if err := j.customers.Save(ctx, customer); err != nil {
				j.logg.Error(j.logg.WithIdentity(ctx, customer.Identity), "saving advanced pickup dates", err)
			}
		}
	}

	j.logg.Info(j.logg.WithField(ctx, "sent", sent), "pickup reminder sweep complete")
	return sent, nil
}

// rollForward advances a pickup date that already passed to the next
// occurrence, in interval steps, and reports whether it moved.
func rollForward(sub *customers.Subscription, now time.Time) bool {
	interval := sub.Frequency.IntervalDays()
	if interval <= 0 {
		return false
	}
	moved := false
	for sub.NextPickup.Before(now) && !sameDay(sub.NextPickup, now) {
		sub.NextPickup = sub.NextPickup.AddDate(0, 0, interval)
		moved = true
	}
	return moved
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func reminderText(sub *customers.Subscription) string {
	return fmt.Sprintf(
		"🔔 Υπενθύμιση: αύριο %s σας περιμένει το *%s* στο κατάστημα (%s€ με την έκπτωση συνδρομής). Στείλτε «μενού» για αλλαγές.",
		sub.PickupDay, sub.ProductName, sub.Price.StringFixed(2),
	)
}
