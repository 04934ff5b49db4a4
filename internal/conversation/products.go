package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/panesgr/chatbot-backend/internal/catalog"
	"github.com/panesgr/chatbot-backend/internal/pricing"
	"github.com/panesgr/chatbot-backend/internal/sessions"
	"github.com/panesgr/chatbot-backend/internal/stores"
)

var moreCommands = keywordSet("more", "περισσότερα", "περισσοτερα")

// handleSearch runs a free-text catalog query. An empty result keeps the
// customer in the search state for another try.
func (s *Service) handleSearch(ctx context.Context, t *turn) string {
	if t.text == "" {
		return "🔍 Πληκτρολογήστε το προϊόν που ψάχνετε:"
	}
	products := s.catalog.Search(ctx, t.text, searchLimit)
	if len(products) == 0 {
		return "Δεν βρέθηκαν προϊόντα για «" + t.text + "». Δοκιμάστε άλλη αναζήτηση ή στείλτε «μενού»."
	}
	return s.showResults(t, products, fmt.Sprintf("🔍 *Αποτελέσματα για «%s»:*", t.text), false)
}

// showResults stores the result set in the session and renders page 1.
// The pending continuation (e.g. an in-flight subscription) survives, so
// product selection can resume it.
func (s *Service) showResults(t *turn, products []catalog.Product, header string, noDiscount bool) string {
	if len(products) == 0 {
		return "Δεν βρέθηκαν προϊόντα αυτή τη στιγμή. Στείλτε «μενού» για το κεντρικό μενού."
	}
	t.session.Results = products
	t.session.Page = 1
	t.session.NoDiscountCategory = noDiscount
	t.session.Selected = nil
	t.session.Transition(sessions.StateProductList)
	return header + "\n\n" + s.renderPage(t)
}

// renderPage prints the current page with absolute item numbers, so the
// number a customer replies with is also the index into the result set.
func (s *Service) renderPage(t *turn) string {
	results := t.session.Results
	start := (t.session.Page - 1) * pageSize
	end := start + pageSize
	if end > len(results) {
		end = len(results)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(s.renderProductLine(i+1, results[i], t.customer.IsBusiness))
	}
	if t.session.NoDiscountCategory {
		b.WriteString("\nℹ️ Στην κατηγορία αυτή δεν ισχύουν εκπτώσεις βάσει νομοθεσίας.\n")
	}
	b.WriteString("\nΣτείλτε τον αριθμό του προϊόντος που σας ενδιαφέρει.")
	if end < len(results) {
		b.WriteString("\nΓράψτε «περισσότερα» για την επόμενη σελίδα.")
	}
	return b.String()
}

func (s *Service) renderProductLine(number int, p catalog.Product, business bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s — %s€", number, p.Name, p.Price.StringFixed(2))
	if !p.InStock() {
		b.WriteString(" (εξαντλημένο)")
	}
	b.WriteString("\n")
	if business {
		if bp, ok := pricing.BusinessPrice(p); ok {
			fmt.Fprintf(&b, "   💼 Τιμή επαγγελματία: %s€\n", bp.StringFixed(2))
		}
	}
	for _, note := range pricing.Promotions(p) {
		b.WriteString("   " + note + "\n")
	}
	return b.String()
}

// handleProductList resolves a numeric selection or advances the page.
func (s *Service) handleProductList(_ context.Context, t *turn) string {
	if len(t.session.Results) == 0 {
		t.session.ToMenu()
		return "Η λίστα προϊόντων δεν είναι πλέον διαθέσιμη.\n\n" + menuText()
	}

	if matches(moreCommands, t.text) {
		if t.session.Page*pageSize >= len(t.session.Results) {
			return "Δεν υπάρχουν άλλα αποτελέσματα.\n\n" + s.renderPage(t)
		}
		t.session.Page++
		return s.renderPage(t)
	}

	choice, err := strconv.Atoi(strings.TrimSpace(t.text))
	if err != nil {
		return "Στείλτε τον αριθμό ενός προϊόντος από τη λίστα, «περισσότερα» για επόμενη σελίδα, ή «μενού»."
	}

	start := (t.session.Page-1)*pageSize + 1
	end := t.session.Page * pageSize
	if end > len(t.session.Results) {
		end = len(t.session.Results)
	}
	if choice < start || choice > end {
		return fmt.Sprintf("Μη έγκυρη επιλογή. Στείλτε έναν αριθμό από %d έως %d.", start, end)
	}

	product := t.session.Results[choice-1]
	return s.selectProduct(t, product)
}

// selectProduct either resumes a pending subscription or shows the
// purchase-mode choices for the product.
func (s *Service) selectProduct(t *turn, product catalog.Product) string {
	if t.session.Continuation == sessions.ContinuationSubscribe {
		t.session.Continuation = sessions.ContinuationNone
		return s.beginSubscription(t, product)
	}

	t.session.Selected = &product
	t.session.Transition(sessions.StateProductChoice)

	store, ok := stores.ByID(t.customer.StoreID)
	if !ok {
		store = stores.Default()
	}

	lines := []string{
		fmt.Sprintf("✅ Επιλέξατε: *%s* — %s€", product.Name, product.Price.StringFixed(2)),
		"",
		"1. 🛍️ Παραλαβή από το κατάστημα",
		"2. 🔄 Συνδρομή παραλαβής με έκπτωση 10%",
	}
	if store.DriveThrough {
		lines = append(lines, "3. 🚗 Drive-through κράτηση (έτοιμη σε 3 ώρες)")
	}
	lines = append(lines, "", "Στείλτε τον αριθμό της επιλογής σας.")
	return strings.Join(lines, "\n")
}

// beginSubscription enters the subscription sub-flow, rejecting excluded
// products outright.
func (s *Service) beginSubscription(t *turn, product catalog.Product) string {
	if pricing.IsDiscountExcluded(product) {
		t.session.ToMenu()
		return "⚠️ Το προϊόν αυτό εξαιρείται από εκπτώσεις και συνδρομές βάσει νομοθεσίας.\n\n" + menuText()
	}

	t.session.Draft = &sessions.SubscriptionDraft{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       pricing.SubscriptionPrice(product),
	}
	t.session.Transition(sessions.StateSubscriptionFrequency)

	prompt := frequencyPromptText(t.session.Draft)
	t.session.Draft.FrequencyShown = true
	return prompt
}

func (s *Service) handleProductChoice(ctx context.Context, t *turn) string {
	product := t.session.Selected
	if product == nil {
		t.session.ToMenu()
		return "Η επιλογή προϊόντος δεν είναι πλέον διαθέσιμη.\n\n" + menuText()
	}

	store, ok := stores.ByID(t.customer.StoreID)
	if !ok {
		store = stores.Default()
	}
	maxChoice := 2
	if store.DriveThrough {
		maxChoice = 3
	}

	choice, err := strconv.Atoi(strings.TrimSpace(t.text))
	if err != nil || choice < 1 || choice > maxChoice {
		return invalidChoiceText(maxChoice)
	}

	switch choice {
	case 1:
		t.session.ToMenu()
		return strings.Join([]string{
			fmt.Sprintf("🛍️ Το *%s* σας περιμένει στο κατάστημα:", product.Name),
			"",
			locationText(t.customer),
			"",
			menuText(),
		}, "\n")
	case 2:
		return s.beginSubscription(t, *product)
	default:
		return s.reserveDriveThrough(ctx, t, *product, store)
	}
}

// reserveDriveThrough creates a 3-hour hold and notifies the store and the
// support inbox. Mail failures are logged, never shown to the customer.
func (s *Service) reserveDriveThrough(ctx context.Context, t *turn, product catalog.Product, store stores.Store) string {
	orderID := s.newID()
	expiry := s.now().Add(3 * time.Hour)

	body := fmt.Sprintf(
		"Νέα drive-through κράτηση\n\nΠροϊόν: %s (%s€)\nΠελάτης: %s\nΚατάστημα: %s\nΚωδικός: %s\nΙσχύει έως: %s",
		product.Name, product.Price.StringFixed(2),
		t.customer.Identity, store.Name, orderID, expiry.Format("02/01/2006 15:04"),
	)
	for _, to := range []string{store.Email, s.supportEmail} {
		if err := s.mailer.Send(ctx, to, "Drive-through κράτηση "+orderID, body); err != nil {
			s.logg.Error(ctx, "sending drive-through notification", err)
		}
	}

	t.session.ToMenu()
	return strings.Join([]string{
		"🚗 *Η κράτησή σας καταχωρήθηκε!*",
		"",
		"Κωδικός παραγγελίας: " + orderID,
		fmt.Sprintf("Παραλαβή από: %s", store.Name),
		fmt.Sprintf("Η κράτηση ισχύει έως τις %s.", expiry.Format("15:04")),
		"",
		"Αναφέρετε τον κωδικό στο προσωπικό κατά την παραλαβή.",
		"",
		menuText(),
	}, "\n")
}
