package controllers

import (
	"net/http"

	"github.com/panesgr/chatbot-backend/api/responses"
	"github.com/panesgr/chatbot-backend/pkg/config"
)

// Health reports build and dependency-configuration status.
func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"status":        "ok",
			"version":       cfg.App.Version,
			"env":           cfg.App.Env,
			"ai_configured": cfg.OpenAI.Configured(),
		})
	}
}
