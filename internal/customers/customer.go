// Package customers holds the per-identity customer profile and the keyed
// store abstraction behind it. Profiles are created lazily on first contact
// and never removed.
package customers

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the recurring pickup cadence of a subscription.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// IntervalDays returns the pickup interval for the frequency.
func (f Frequency) IntervalDays() int {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyMonthly:
		return 30
	default:
		return 0
	}
}

// Label returns the Greek display name for the frequency.
func (f Frequency) Label() string {
	switch f {
	case FrequencyWeekly:
		return "Εβδομαδιαία"
	case FrequencyBiweekly:
		return "Ανά 15 ημέρες"
	case FrequencyMonthly:
		return "Μηνιαία"
	default:
		return string(f)
	}
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a recurring pickup created by explicit confirmation.
// Price is fixed at creation time and never recomputed.
type Subscription struct {
	ID          string
	ProductID   int64
	ProductName string
	Price       decimal.Decimal
	Frequency   Frequency
	PickupDay   string
	NextPickup  time.Time
	Status      SubscriptionStatus
	CreatedAt   time.Time
}

// Customer is the durable per-identity profile.
type Customer struct {
	Identity         string
	Name             string
	StoreID          string
	IsBusiness       bool
	BusinessCategory string
	LoyaltyPoints    int
	Subscriptions    []Subscription
	CreatedAt        time.Time
	LastSeenAt       time.Time
}

// ActiveSubscriptions returns the subscriptions that have not been cancelled.
func (c *Customer) ActiveSubscriptions() []Subscription {
	var active []Subscription
	for _, sub := range c.Subscriptions {
		if sub.Status == SubscriptionActive {
			active = append(active, sub)
		}
	}
	return active
}

// CancelSubscription marks the subscription with the given id cancelled.
// It reports whether a matching active subscription was found.
func (c *Customer) CancelSubscription(id string) bool {
	for i := range c.Subscriptions {
		if c.Subscriptions[i].ID == id && c.Subscriptions[i].Status == SubscriptionActive {
			c.Subscriptions[i].Status = SubscriptionCancelled
			return true
		}
	}
	return false
}
