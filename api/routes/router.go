package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/panesgr/chatbot-backend/api/controllers"
	"github.com/panesgr/chatbot-backend/api/middleware"
	"github.com/panesgr/chatbot-backend/internal/notify"
	"github.com/panesgr/chatbot-backend/pkg/config"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	Conversation controllers.ConversationRouter
	Reminders    controllers.ReminderRunner
	Mailer       notify.Mailer
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
	)

	r.Get("/", controllers.Home(d.Config))
	r.Get("/health", controllers.Health(d.Config))
	r.Post("/webhook", controllers.Webhook(d.Conversation, d.Logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stores", controllers.Stores())
		r.Get("/franchise", controllers.Franchise())
		r.Get("/wholesale", controllers.Wholesale())
		r.Post("/leads", controllers.SubmitLead(d.Mailer, d.Config.App.SupportEmail, d.Logger))
		r.With(middleware.SharedSecret(d.Config.Reminders.Secret, d.Logger)).
			Post("/reminders/run", controllers.RunReminders(d.Reminders, d.Logger))
	})

	return r
}
