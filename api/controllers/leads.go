package controllers

import (
	"fmt"
	"net/http"

	"github.com/panesgr/chatbot-backend/api/responses"
	"github.com/panesgr/chatbot-backend/api/validators"
	"github.com/panesgr/chatbot-backend/internal/notify"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

// LeadRequest is the web-form entry point into the same lead pipeline the
// conversational franchise and wholesale flows feed.
type LeadRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=franchise wholesale"`
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Phone string `json:"phone" validate:"required,min=10,max=20"`
	Email string `json:"email" validate:"required,email"`
}

// SubmitLead validates the payload and emits the lead notification.
func SubmitLead(mailer notify.Mailer, supportEmail string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LeadRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body := fmt.Sprintf("Νέο %s lead (web)\n\nΌνομα: %s\nΤηλέφωνο: %s\nEmail: %s",
			req.Kind, req.Name, req.Phone, req.Email)
		if err := mailer.Send(r.Context(), supportEmail, "Νέο "+req.Kind+" lead", body); err != nil {
			// The lead is acknowledged regardless; delivery retries are a
			// human follow-up, same as the conversational flows.
			logg.Error(r.Context(), "sending lead notification", err)
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "received"})
	}
}
