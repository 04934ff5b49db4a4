package controllers

import (
	"fmt"
	"net/http"

	"github.com/panesgr/chatbot-backend/api/responses"
	"github.com/panesgr/chatbot-backend/internal/stores"
	"github.com/panesgr/chatbot-backend/pkg/config"
)

// Home is the minimal HTML status page at the root path.
func Home(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w,
			`<html><head><title>PANES.GR Chatbot</title></head><body>`+
				`<h1>🤖 PANES.GR WhatsApp Bot</h1>`+
				`<p>Έκδοση %s — το bot λειτουργεί κανονικά.</p>`+
				`</body></html>`, cfg.App.Version)
	}
}

// Stores dumps the active store registry.
func Stores() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, stores.All())
	}
}

// Franchise dumps the franchise program description.
func Franchise() http.HandlerFunc {
	info := map[string]any{
		"program": "PANES.GR Franchise",
		"summary": "Δίκτυο καταστημάτων βρεφικών ειδών με χαμηλό αρχικό κόστος και πλήρη υποστήριξη.",
		"contact": "franchise@panes.gr",
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, info)
	}
}

// Wholesale dumps the wholesale terms.
func Wholesale() http.HandlerFunc {
	info := map[string]any{
		"discount_percent":        20,
		"eligible":                "Προϊόντα με σήμανση επαγγελματία",
		"free_delivery_threshold": "150€",
		"contact":                 "wholesale@panes.gr",
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, info)
	}
}
