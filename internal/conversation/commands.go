package conversation

import (
	"context"
	"strings"

	"github.com/panesgr/chatbot-backend/internal/sessions"
)

// Global commands short-circuit any state. Keyword sets cover the Greek
// forms with and without accents plus the English equivalent.
var (
	menuCommands      = keywordSet("menu", "μενού", "μενου", "0")
	helpCommands      = keywordSet("help", "βοήθεια", "βοηθεια")
	storeCommands     = keywordSet("stores", "καταστήματα", "καταστηματα", "αλλαγή καταστήματος", "αλλαγη καταστηματος")
	franchiseCommands = keywordSet("franchise", "φραντσάιζ", "φραντσαιζ")
	wholesaleCommands = keywordSet("wholesale", "χονδρική", "χονδρικη")
	locationCommands  = keywordSet("location", "τοποθεσία", "τοποθεσια", "ωράριο", "ωραριο")
	aiCommands        = keywordSet("ai", "βοηθός", "βοηθος", "assistant")
)

func keywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

func matches(set map[string]struct{}, text string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// globalCommand handles the always-available commands. The second return
// reports whether the text was consumed.
func (s *Service) globalCommand(ctx context.Context, t *turn) (string, bool) {
	switch {
	case matches(menuCommands, t.text):
		t.session.ToMenu()
		return menuText(), true

	case matches(helpCommands, t.text):
		return helpText(), true

	case matches(storeCommands, t.text):
		t.session.ClearScratch()
		t.session.Transition(sessions.StateStoreSelection)
		return storeSelectionText(), true

	case matches(franchiseCommands, t.text):
		return s.enterFranchise(t), true

	case matches(wholesaleCommands, t.text):
		return s.enterWholesale(t), true

	case matches(locationCommands, t.text):
		return locationText(t.customer), true

	case matches(aiCommands, t.text):
		return s.enterAIMode(ctx, t), true
	}
	return "", false
}
