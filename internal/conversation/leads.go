package conversation

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/panesgr/chatbot-backend/internal/sessions"
)

var wholesaleCategories = []string{"Παιδικός σταθμός", "Ξενοδοχείο", "Κατάστημα λιανικής", "Άλλο"}

func (s *Service) enterFranchise(t *turn) string {
	t.session.ClearScratch()
	t.session.Transition(sessions.StateFranchise)
	return franchiseIntroText()
}

func (s *Service) enterWholesale(t *turn) string {
	t.session.ClearScratch()
	t.session.Transition(sessions.StateWholesale)
	return wholesaleIntroText()
}

// handleFranchise is the three-step lead form: name, phone, email.
func (s *Service) handleFranchise(ctx context.Context, t *turn) string {
	switch t.session.FormStep {
	case 0:
		if t.text == "" {
			return "Στείλτε μας το ονοματεπώνυμό σας:"
		}
		t.session.FormValues = append(t.session.FormValues, t.text)
		t.session.FormStep = 1
		return "Ευχαριστούμε! Σε ποιο τηλέφωνο μπορούμε να σας καλέσουμε;"
	case 1:
		if !validPhone(t.text) {
			return "Το τηλέφωνο πρέπει να έχει τουλάχιστον 10 ψηφία. Δοκιμάστε ξανά:"
		}
		t.session.FormValues = append(t.session.FormValues, t.text)
		t.session.FormStep = 2
		return "Τέλεια! Και το email σας;"
	default:
		if !validEmail(t.text) {
			return "Το email δεν φαίνεται σωστό. Δοκιμάστε ξανά:"
		}
		values := t.session.FormValues
		s.notifySupport(ctx, "Νέο franchise lead",
			"Όνομα: "+values[0]+"\nΤηλέφωνο: "+values[1]+"\nEmail: "+t.text+
				"\nΚανάλι: "+t.customer.Identity)
		t.session.ToMenu()
		return "🤝 Ευχαριστούμε για το ενδιαφέρον σας! Θα επικοινωνήσουμε μαζί σας εντός 2 εργάσιμων ημερών.\n\n" + menuText()
	}
}

// handleWholesale classifies the business and marks the profile.
func (s *Service) handleWholesale(_ context.Context, t *turn) string {
	choice, err := strconv.Atoi(strings.TrimSpace(t.text))
	if err != nil || choice < 1 || choice > len(wholesaleCategories) {
		return invalidChoiceText(len(wholesaleCategories))
	}

	t.customer.IsBusiness = true
	t.customer.BusinessCategory = wholesaleCategories[choice-1]
	t.session.Transition(sessions.StateWholesaleInquiry)
	return strings.Join([]string{
		"💼 *Όροι χονδρικής:*",
		"",
		"• Έκπτωση 20% σε προϊόντα με σήμανση επαγγελματία",
		"• Τιμολόγιο με κάθε παραγγελία",
		"• Παράδοση στον χώρο σας για παραγγελίες άνω των 150€",
		"",
		"Θέλετε να επικοινωνήσουμε μαζί σας;",
		"1. Ναι, θα αφήσω στοιχεία",
		"2. Όχι, ευχαριστώ",
	}, "\n")
}

func (s *Service) handleWholesaleInquiry(_ context.Context, t *turn) string {
	switch strings.TrimSpace(t.text) {
	case "1":
		t.session.Transition(sessions.StateWholesalePhone)
		return "Στείλτε μας τηλέφωνο ή email για να επικοινωνήσουμε:"
	case "2":
		t.session.ToMenu()
		return "Εντάξει! Οι επαγγελματικές τιμές εμφανίζονται πλέον στις αναζητήσεις σας.\n\n" + menuText()
	default:
		return "Στείλτε 1 για να αφήσετε στοιχεία ή 2 για επιστροφή."
	}
}

// handleWholesalePhone accepts either a phone or an email as the contact.
func (s *Service) handleWholesalePhone(ctx context.Context, t *turn) string {
	if !validPhone(t.text) && !validEmail(t.text) {
		return "Χρειαζόμαστε τηλέφωνο (τουλάχιστον 10 ψηφία) ή έγκυρο email. Δοκιμάστε ξανά:"
	}

	s.notifySupport(ctx, "Νέο wholesale lead",
		"Επιχείρηση: "+t.customer.BusinessCategory+"\nΕπικοινωνία: "+t.text+
			"\nΚανάλι: "+t.customer.Identity)
	t.session.ToMenu()
	return "📦 Ευχαριστούμε! Ο υπεύθυνος χονδρικής θα επικοινωνήσει σύντομα μαζί σας.\n\n" + menuText()
}

// validPhone requires at least 10 digits once separators are stripped, and
// nothing but digits, spaces, dashes and a leading plus.
func validPhone(text string) bool {
	digits := 0
	for i, r := range text {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '-' || r == '.':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return digits >= 10
}

// validEmail is deliberately superficial: an @ and a dot. Real validation
// happens when a human follows up on the lead.
func validEmail(text string) bool {
	return strings.Contains(text, "@") && strings.Contains(text, ".") && !strings.ContainsAny(text, " \t")
}
