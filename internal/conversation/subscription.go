package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/panesgr/chatbot-backend/internal/customers"
	"github.com/panesgr/chatbot-backend/internal/sessions"
)

// pickupDays are the selectable pickup weekdays, Monday through Saturday,
// aligned with time.Weekday (Δευτέρα = time.Monday = 1).
var pickupDays = []string{"Δευτέρα", "Τρίτη", "Τετάρτη", "Πέμπτη", "Παρασκευή", "Σάββατο"}

func frequencyPromptText(draft *sessions.SubscriptionDraft) string {
	return strings.Join([]string{
		fmt.Sprintf("🔄 Συνδρομή για *%s* — %s€ ανά παραλαβή (με έκπτωση 10%%).", draft.ProductName, draft.Price.StringFixed(2)),
		"",
		"Πόσο συχνά θέλετε να παραλαμβάνετε;",
		"1. " + customers.FrequencyWeekly.Label(),
		"2. " + customers.FrequencyBiweekly.Label(),
		"3. " + customers.FrequencyMonthly.Label(),
	}, "\n")
}

func dayPromptText() string {
	var b strings.Builder
	b.WriteString("📅 Ποια ημέρα σας βολεύει για παραλαβή;\n\n")
	for i, day := range pickupDays {
		fmt.Fprintf(&b, "%d. %s\n", i+1, day)
	}
	return b.String()
}

func (s *Service) handleSubscriptionFrequency(_ context.Context, t *turn) string {
	draft := t.session.Draft
	if draft == nil {
		t.session.ToMenu()
		return "Η συνδρομή δεν είναι πλέον διαθέσιμη.\n\n" + menuText()
	}

	choice, err := strconv.Atoi(strings.TrimSpace(t.text))
	if err != nil || choice < 1 || choice > 3 {
		if !draft.FrequencyShown {
			draft.FrequencyShown = true
			return frequencyPromptText(draft)
		}
		return invalidChoiceText(3)
	}

	switch choice {
	case 1:
		draft.Frequency = customers.FrequencyWeekly
	case 2:
		draft.Frequency = customers.FrequencyBiweekly
	case 3:
		draft.Frequency = customers.FrequencyMonthly
	}
	t.session.Transition(sessions.StateSubscriptionDay)
	return dayPromptText()
}

func (s *Service) handleSubscriptionDay(_ context.Context, t *turn) string {
	draft := t.session.Draft
	if draft == nil {
		t.session.ToMenu()
		return "Η συνδρομή δεν είναι πλέον διαθέσιμη.\n\n" + menuText()
	}

	choice, err := strconv.Atoi(strings.TrimSpace(t.text))
	if err != nil || choice < 1 || choice > len(pickupDays) {
		return invalidChoiceText(len(pickupDays))
	}

	draft.PickupDay = pickupDays[choice-1]
	t.session.Transition(sessions.StateSubscriptionConfirm)
	return strings.Join([]string{
		"📋 *Σύνοψη συνδρομής:*",
		"",
		"Προϊόν: " + draft.ProductName,
		"Τιμή: " + draft.Price.StringFixed(2) + "€ ανά παραλαβή",
		"Συχνότητα: " + draft.Frequency.Label(),
		"Ημέρα παραλαβής: " + draft.PickupDay,
		"",
		"1. ✅ Επιβεβαίωση",
		"2. ❌ Ακύρωση",
	}, "\n")
}

func (s *Service) handleSubscriptionConfirm(_ context.Context, t *turn) string {
	draft := t.session.Draft
	if draft == nil {
		t.session.ToMenu()
		return "Η συνδρομή δεν είναι πλέον διαθέσιμη.\n\n" + menuText()
	}

	switch strings.TrimSpace(t.text) {
	case "1":
		next := nextPickup(s.now(), draft.PickupDay)
		sub := customers.Subscription{
			ID:          s.newID(),
			ProductID:   draft.ProductID,
			ProductName: draft.ProductName,
			Price:       draft.Price,
			Frequency:   draft.Frequency,
			PickupDay:   draft.PickupDay,
			NextPickup:  next,
			Status:      customers.SubscriptionActive,
			CreatedAt:   s.now(),
		}
		t.customer.Subscriptions = append(t.customer.Subscriptions, sub)
		t.session.ToMenu()
		return strings.Join([]string{
			"🎉 *Η συνδρομή σας ενεργοποιήθηκε!*",
			"",
			fmt.Sprintf("Πρώτη παραλαβή: %s %s", draft.PickupDay, next.Format("02/01/2006")),
			"Θα λαμβάνετε υπενθύμιση μία ημέρα πριν από κάθε παραλαβή.",
			"",
			menuText(),
		}, "\n")
	case "2":
		t.session.ToMenu()
		return "Η συνδρομή ακυρώθηκε, δεν έγινε καμία καταχώρηση.\n\n" + menuText()
	default:
		return "Στείλτε 1 για επιβεβαίωση ή 2 για ακύρωση."
	}
}

// nextPickup returns the next occurrence of the given Greek weekday strictly
// after today: picking today's weekday rolls a full week ahead.
func nextPickup(from time.Time, day string) time.Time {
	target := time.Monday
	for i, name := range pickupDays {
		if name == day {
			target = time.Weekday(i + 1)
			break
		}
	}
	ahead := (int(target)-int(from.Weekday())+6)%7 + 1
	return from.AddDate(0, 0, ahead)
}

func accountText(t *turn) string {
	lines := []string{"👤 *Ο λογαριασμός σας*", ""}
	lines = append(lines, "Κατάστημα παραλαβής: "+storeName(t.customer.StoreID))

	active := t.customer.ActiveSubscriptions()
	if len(active) == 0 {
		lines = append(lines, "Δεν έχετε ενεργές συνδρομές.")
	} else {
		lines = append(lines, "", "Ενεργές συνδρομές:")
		for i, sub := range active {
			lines = append(lines, fmt.Sprintf("%d. %s — %s€, %s (%s)",
				i+1, sub.ProductName, sub.Price.StringFixed(2), sub.Frequency.Label(), sub.PickupDay))
		}
	}

	lines = append(lines, "",
		"1. Αλλαγή καταστήματος",
		"2. Ακύρωση συνδρομής",
		"",
		"Στείλτε «μενού» για το κεντρικό μενού.")
	return strings.Join(lines, "\n")
}

// handleMyAccount shows the profile summary and routes to store selection
// or subscription cancellation. FormStep 1 means a cancellation index is
// expected next.
func (s *Service) handleMyAccount(_ context.Context, t *turn) string {
	active := t.customer.ActiveSubscriptions()

	if t.session.FormStep == 1 {
		choice, err := strconv.Atoi(strings.TrimSpace(t.text))
		if err != nil || choice < 1 || choice > len(active) {
			return invalidChoiceText(len(active))
		}
		t.customer.CancelSubscription(active[choice-1].ID)
		t.session.ToMenu()
		return "Η συνδρομή «" + active[choice-1].ProductName + "» ακυρώθηκε.\n\n" + menuText()
	}

	switch strings.TrimSpace(t.text) {
	case "1":
		t.session.ClearScratch()
		t.session.Transition(sessions.StateStoreSelection)
		return storeSelectionText()
	case "2":
		if len(active) == 0 {
			t.session.ToMenu()
			return "Δεν έχετε ενεργές συνδρομές.\n\n" + menuText()
		}
		t.session.FormStep = 1
		var b strings.Builder
		b.WriteString("Ποια συνδρομή θέλετε να ακυρώσετε;\n\n")
		for i, sub := range active {
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, sub.ProductName, sub.Frequency.Label())
		}
		return b.String()
	default:
		return accountText(t)
	}
}
