package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"soonish/pkg/future"
	"soonish/pkg/suggest"
)

type parseRequest struct {
	Phrase string `json:"phrase"`
	Ref    string `json:"ref,omitempty"` // RFC3339; defaults to now
}

type parseResponse struct {
	Phrase string    `json:"phrase"`
	At     time.Time `json:"at"`
}

func (a *API) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req parseRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64*1024)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ref := time.Now()
	if req.Ref != "" {
		t, err := time.Parse(time.RFC3339, req.Ref)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ref timestamp"})
			return
		}
		ref = t
	}

	at, err := a.Interp.Interpret(req.Phrase, ref)
	if err != nil {
		if errors.Is(err, future.ErrNoResult) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no result"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{Phrase: req.Phrase, At: at})
}

func (a *API) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	q := r.URL.Query().Get("q")
	limit := suggest.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	suggestions := suggest.Complete(a.Interp, a.Table, q, time.Now(), limit)
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}
