package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"soonish/internal/config"
	"soonish/internal/realtime"
	"soonish/internal/store"
	"soonish/pkg/glossary"
	"soonish/pkg/phrase"
)

// API holds dependencies for all API handlers.
type API struct {
	Store        store.ReminderStore
	Events       *realtime.Broker
	Interp       *phrase.Interpreter
	Table        *glossary.Table
	GetConfig    func() *config.Config
	Schedule     func(r *store.Reminder) error
	Cancel       func(id string)
	NextFireTime func(id string) (time.Time, bool)
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/parse", a.handleParse)
	mux.HandleFunc("/api/v1/suggest", a.handleSuggest)
	mux.HandleFunc("/api/v1/reminders/", a.routeReminders)
	mux.HandleFunc("/api/v1/reminders", a.handleListReminders)
	mux.HandleFunc("/api/v1/events", a.handleEvents)
	mux.HandleFunc("/api/v1/config", a.handleConfig)
	mux.HandleFunc("/api/v1/health", a.handleHealth)
	mux.HandleFunc("/api/v1/stats", a.handleStats)
}

// routeReminders dispatches /api/v1/reminders/{id}[/action] requests.
func (a *API) routeReminders(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/reminders/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		a.handleListReminders(w, r)
		return
	}

	action := ""
	if len(parts) > 1 {
		action = parts[1]
	}

	switch {
	case action == "cancel" && r.Method == http.MethodPut:
		a.handleCancelReminder(w, r, id)
	case action == "fires" && r.Method == http.MethodGet:
		a.handleListFires(w, r, id)
	case action == "" && r.Method == http.MethodGet:
		a.handleGetReminder(w, r, id)
	case action == "" && r.Method == http.MethodDelete:
		a.handleDeleteReminder(w, r, id)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to write JSON response: %v", err)
	}
}
