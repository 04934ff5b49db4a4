package conversation

import (
	"context"
	"strconv"
	"strings"

	"github.com/panesgr/chatbot-backend/internal/sessions"
)

// handleWelcome greets on first contact; any input leads to the menu.
func (s *Service) handleWelcome(_ context.Context, t *turn) string {
	t.session.ToMenu()
	return "👋 Καλωσήρθατε στο PANES.GR!\n\n" + menuText()
}

func (s *Service) handleMenu(ctx context.Context, t *turn) string {
	choice, err := strconv.Atoi(strings.TrimSpace(t.text))
	if err != nil {
		return invalidChoiceText(11)
	}

	switch choice {
	case 1:
		t.session.ClearScratch()
		t.session.Transition(sessions.StateSearch)
		return "🔍 Πληκτρολογήστε το προϊόν που ψάχνετε:"
	case 2:
		products := s.catalog.Popular(ctx, searchLimit)
		return s.showResults(t, products, "⭐ *Δημοφιλή προϊόντα:*", false)
	case 3:
		products := s.catalog.OnSale(ctx, searchLimit)
		return s.showResults(t, products, "🏷️ *Προσφορές:*", false)
	case 4:
		t.session.ClearScratch()
		t.session.Transition(sessions.StateCategories)
		return categoriesText()
	case 5:
		t.session.ClearScratch()
		t.session.Continuation = sessions.ContinuationSubscribe
		t.session.Transition(sessions.StateSearch)
		return strings.Join([]string{
			"🔄 *Συνδρομή παραλαβής*",
			"",
			"Παραλαμβάνετε τα είδη σας από το κατάστημα όποτε σας βολεύει,",
			"με σταθερή έκπτωση 10% σε κάθε παραλαβή.",
			"",
			"Πληκτρολογήστε το προϊόν που θέλετε να λαμβάνετε:",
		}, "\n")
	case 6:
		t.session.ClearScratch()
		t.session.Transition(sessions.StateMyAccount)
		return accountText(t)
	case 7:
		return locationText(t.customer)
	case 8:
		t.session.ClearScratch()
		t.session.Transition(sessions.StateCustomerService)
		return strings.Join([]string{
			"💬 *Εξυπηρέτηση πελατών*",
			"",
			"1. Υποβολή παραπόνου",
			"2. Αίτημα προϊόντος που δεν βρήκατε",
			"3. Σχόλια & προτάσεις",
		}, "\n")
	case 9:
		t.session.ClearScratch()
		t.session.Transition(sessions.StateStoreSelection)
		return storeSelectionText()
	case 10:
		return s.enterFranchise(t)
	case 11:
		return s.enterWholesale(t)
	default:
		return invalidChoiceText(11)
	}
}
