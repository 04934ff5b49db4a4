package controllers

import (
	"context"
	"net/http"

	"github.com/panesgr/chatbot-backend/api/responses"
	pkgerrors "github.com/panesgr/chatbot-backend/pkg/errors"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

// ReminderRunner executes one reminder sweep and reports how many went out.
type ReminderRunner interface {
	Run(ctx context.Context) (int, error)
}

// RunReminders triggers the sweep on demand. The shared-secret middleware
// guards the route; this controller only runs and reports.
func RunReminders(runner ReminderRunner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sent, err := runner.Run(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reminder sweep failed"))
			return
		}
		responses.WriteSuccess(w, map[string]int{"sent": sent})
	}
}
