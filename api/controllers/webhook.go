package controllers

import (
	"context"
	"net/http"

	"github.com/panesgr/chatbot-backend/api/responses"
	pkgerrors "github.com/panesgr/chatbot-backend/pkg/errors"
	"github.com/panesgr/chatbot-backend/pkg/logger"
	"github.com/panesgr/chatbot-backend/pkg/twiml"
)

// ConversationRouter produces the reply for one inbound message.
type ConversationRouter interface {
	Handle(ctx context.Context, identity, text string) (string, error)
}

const webhookFallbackReply = "Κάτι πήγε στραβά. 🙏 Στείλτε «μενού» για να ξεκινήσουμε από την αρχή."

// Webhook receives the Twilio form post (From, Body) and answers with a
// TwiML message envelope. A router failure still returns a valid envelope:
// the sender gets an apology instead of a delivery error.
func Webhook(router ConversationRouter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed webhook form"))
			return
		}
		from := r.PostFormValue("From")
		body := r.PostFormValue("Body")
		if from == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "missing From field"))
			return
		}

		reply, err := router.Handle(r.Context(), from, body)
		if err != nil {
			logg.Error(r.Context(), "conversation routing failed", err)
			reply = webhookFallbackReply
		}

		envelope, err := twiml.Reply(reply)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding reply"))
			return
		}

		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(envelope))
	}
}
