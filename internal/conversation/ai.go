package conversation

import (
	"context"

	"github.com/panesgr/chatbot-backend/internal/sessions"
)

const aiExitHint = "\n\n_(Γράψτε «μενού» για επιστροφή στο κεντρικό μενού.)_"

func (s *Service) enterAIMode(ctx context.Context, t *turn) string {
	if s.assistant == nil {
		return "Ο ψηφιακός βοηθός δεν είναι διαθέσιμος αυτή τη στιγμή. Στείλτε «μενού» για τις υπόλοιπες επιλογές."
	}
	t.session.ClearScratch()
	t.session.AIMode = true
	s.logg.Info(ctx, "entering assistant mode")
	return "🤖 Είμαι ο ψηφιακός βοηθός του PANES.GR — ρωτήστε με ό,τι θέλετε!" + aiExitHint
}

// handleAI forwards the message with the bounded rolling transcript. Any
// backend failure drops the customer back to the menu instead of leaving
// the conversation stuck in a dead mode.
func (s *Service) handleAI(ctx context.Context, t *turn) string {
	reply, err := s.assistant.Reply(ctx, t.session.AIHistory, t.text)
	if err != nil {
		s.logg.Error(ctx, "assistant backend failure, leaving assistant mode", err)
		t.session.ToMenu()
		return "Ο βοηθός δεν είναι διαθέσιμος αυτή τη στιγμή. 🙏\n\n" + menuText()
	}

	t.session.AIHistory = append(t.session.AIHistory,
		sessions.AIMessage{Role: "user", Content: t.text},
		sessions.AIMessage{Role: "assistant", Content: reply},
	)
	// Two entries per turn; drop the oldest beyond the configured window.
	if max := s.historyTurns * 2; len(t.session.AIHistory) > max {
		t.session.AIHistory = t.session.AIHistory[len(t.session.AIHistory)-max:]
	}

	return reply + aiExitHint
}
