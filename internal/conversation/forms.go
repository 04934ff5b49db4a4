package conversation

import (
	"context"
	"strconv"
	"strings"

	"github.com/panesgr/chatbot-backend/internal/sessions"
	"github.com/panesgr/chatbot-backend/internal/stores"
)

func (s *Service) handleCustomerService(_ context.Context, t *turn) string {
	switch strings.TrimSpace(t.text) {
	case "1":
		t.session.Transition(sessions.StateComplaintForm)
		t.session.FormStep = 0
		t.session.FormValues = nil
		return "📝 Λυπούμαστε για την εμπειρία σας. Περιγράψτε μας τι συνέβη:"
	case "2":
		t.session.Transition(sessions.StateProductRequest)
		return "🔎 Ποιο προϊόν ψάχνατε και δεν βρήκατε; Γράψτε μάρκα και μέγεθος αν τα γνωρίζετε:"
	case "3":
		t.session.Transition(sessions.StateFeedback)
		return "💡 Ακούμε! Γράψτε μας τα σχόλια ή τις προτάσεις σας:"
	default:
		return invalidChoiceText(3)
	}
}

// handleComplaintForm collects the description and then a callback phone.
func (s *Service) handleComplaintForm(ctx context.Context, t *turn) string {
	if t.text == "" {
		return "Περιγράψτε μας τι συνέβη:"
	}

	switch t.session.FormStep {
	case 0:
		t.session.FormValues = append(t.session.FormValues, t.text)
		t.session.FormStep = 1
		return "Σε ποιο τηλέφωνο μπορούμε να σας καλέσουμε;"
	default:
		description := strings.Join(t.session.FormValues, "\n")
		s.notifySupport(ctx, "Νέο παράπονο πελάτη",
			"Πελάτης: "+t.customer.Identity+"\nΤηλέφωνο: "+t.text+"\n\n"+description)
		t.session.ToMenu()
		return "Ευχαριστούμε! Το παράπονό σας καταγράφηκε και θα επικοινωνήσουμε σύντομα μαζί σας.\n\n" + menuText()
	}
}

func (s *Service) handleProductRequest(ctx context.Context, t *turn) string {
	if t.text == "" {
		return "Γράψτε μας το προϊόν που ψάχνατε:"
	}
	s.notifySupport(ctx, "Αίτημα προϊόντος",
		"Πελάτης: "+t.customer.Identity+"\nΚατάστημα: "+storeName(t.customer.StoreID)+"\n\n"+t.text)
	t.session.ToMenu()
	return "Ευχαριστούμε! Θα εξετάσουμε τη διαθεσιμότητα και θα σας ενημερώσουμε.\n\n" + menuText()
}

func (s *Service) handleFeedback(ctx context.Context, t *turn) string {
	if t.text == "" {
		return "Γράψτε μας τα σχόλιά σας:"
	}
	s.notifySupport(ctx, "Σχόλια πελάτη", "Πελάτης: "+t.customer.Identity+"\n\n"+t.text)
	t.session.ToMenu()
	return "Ευχαριστούμε για τα σχόλιά σας! 🙏\n\n" + menuText()
}

func (s *Service) handleStoreSelection(_ context.Context, t *turn) string {
	all := stores.All()
	choice, err := strconv.Atoi(strings.TrimSpace(t.text))
	if err != nil || choice < 1 || choice > len(all) {
		return invalidChoiceText(len(all))
	}

	selected := all[choice-1]
	t.customer.StoreID = selected.ID
	t.session.ToMenu()
	return "✅ Κατάστημα παραλαβής: *" + selected.Name + "*\n" + selected.Address + "\n\n" + menuText()
}

// notifySupport emails the support inbox, logging and swallowing failures.
func (s *Service) notifySupport(ctx context.Context, subject, body string) {
	if err := s.mailer.Send(ctx, s.supportEmail, subject, body); err != nil {
		s.logg.Error(ctx, "sending support notification", err)
	}
}
