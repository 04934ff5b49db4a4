package conversation

import (
	"strings"
	"testing"
)

func TestValidPhone(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"6912345678", true},
		{"+30 691 234 5678", true},
		{"210-680-0549", true},
		{"210-680-054", false}, // 9 digits
		{"69123", false},
		{"69123456ab", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validPhone(tt.input); got != tt.valid {
			t.Errorf("validPhone(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"maria@example.com", true},
		{"maria@example", false},
		{"maria.example.com", false},
		{"maria @example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validEmail(tt.input); got != tt.valid {
			t.Errorf("validEmail(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}

func TestFranchiseLeadFlow(t *testing.T) {
	f := newFixture(t)
	identity := "whatsapp:+1000"

	reply := f.send(t, identity, "franchise")
	if !strings.Contains(reply, "συνεργάτης") {
		t.Fatalf("franchise command must show the intro, got %q", reply)
	}

	f.send(t, identity, "Μαρία Παπαδοπούλου")
	reply = f.send(t, identity, "123") // too short
	if !strings.Contains(reply, "10 ψηφία") {
		t.Fatalf("short phone must reprompt, got %q", reply)
	}

	f.send(t, identity, "6912345678")
	reply = f.send(t, identity, "not-an-email")
	if !strings.Contains(reply, "email") {
		t.Fatalf("bad email must reprompt, got %q", reply)
	}

	reply = f.send(t, identity, "maria@example.com")
	if !strings.Contains(reply, "ενδιαφέρον") {
		t.Fatalf("completed form must thank the lead, got %q", reply)
	}

	if len(f.mailer.sends) != 1 || !strings.Contains(f.mailer.sends[0], "franchise") {
		t.Fatalf("completed form must email support, got %v", f.mailer.sends)
	}
}

func TestWholesaleFlowMarksBusiness(t *testing.T) {
	f := newFixture(t)
	identity := "whatsapp:+1000"

	f.send(t, identity, "χονδρική")
	f.send(t, identity, "1") // παιδικός σταθμός

	c := f.customer(t, identity)
	if !c.IsBusiness || c.BusinessCategory != "Παιδικός σταθμός" {
		t.Fatalf("wholesale classification must mark the profile, got %+v", c)
	}

	f.send(t, identity, "1") // wants contact
	reply := f.send(t, identity, "2106800549")
	if !strings.Contains(reply, "χονδρικής") {
		t.Fatalf("captured contact must confirm follow-up, got %q", reply)
	}
	if len(f.mailer.sends) != 1 || !strings.Contains(f.mailer.sends[0], "wholesale") {
		t.Fatalf("wholesale lead must email support, got %v", f.mailer.sends)
	}
}

func TestComplaintFormNotifiesSupport(t *testing.T) {
	f := newFixture(t)
	identity := "whatsapp:+1000"

	f.send(t, identity, "menu")
	f.send(t, identity, "8")
	f.send(t, identity, "1")
	f.send(t, identity, "Η παραγγελία μου δεν ήταν έτοιμη.")
	reply := f.send(t, identity, "6912345678")
	if !strings.Contains(reply, "καταγράφηκε") {
		t.Fatalf("completed complaint must be acknowledged, got %q", reply)
	}
	if len(f.mailer.sends) != 1 || !strings.Contains(f.mailer.sends[0], "παράπονο") {
		t.Fatalf("complaint must email support, got %v", f.mailer.sends)
	}
}
