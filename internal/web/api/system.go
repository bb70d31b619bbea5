package api

import (
	"log"
	"net/http"
	"time"
)

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if a.GetConfig == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "config provider unavailable"})
		return
	}

	cfg := a.GetConfig()
	if cfg == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "config unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

type statsResponse struct {
	Total    int        `json:"total"`
	Pending  int        `json:"pending"`
	Fired    int        `json:"fired"`
	Canceled int        `json:"canceled"`
	LastFire *time.Time `json:"last_fire,omitempty"`
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Store.GetStats(r.Context())
	if err != nil {
		log.Printf("ERROR: failed to get stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats failed"})
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Total:    stats.Total,
		Pending:  stats.Pending,
		Fired:    stats.Fired,
		Canceled: stats.Canceled,
		LastFire: stats.LastFire,
	})
}
