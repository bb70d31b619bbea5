package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"soonish/internal/realtime"
	"soonish/internal/store"
	"soonish/pkg/future"
)

type reminderResponse struct {
	ID        string     `json:"id"`
	Phrase    string     `json:"phrase"`
	Message   string     `json:"message,omitempty"`
	At        time.Time  `json:"at"`
	Zone      string     `json:"zone,omitempty"`
	Schedule  string     `json:"schedule,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	NextFire  *time.Time `json:"next_fire,omitempty"`
}

func (a *API) reminderResp(r *store.Reminder) reminderResponse {
	resp := reminderResponse{
		ID:        r.ID,
		Phrase:    r.Phrase,
		Message:   r.Message,
		At:        r.At,
		Zone:      r.Zone,
		Schedule:  r.Schedule,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
	if a.NextFireTime != nil && r.Status == store.StatusPending {
		if next, ok := a.NextFireTime(r.ID); ok {
			resp.NextFire = &next
		}
	}
	return resp
}

func (a *API) handleListReminders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// continue
	case http.MethodPost:
		a.handleCreateReminder(w, r)
		return
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	opts := store.ListOpts{Status: r.URL.Query().Get("status")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		opts.Limit = n
	}

	reminders, err := a.Store.ListReminders(r.Context(), opts)
	if err != nil {
		log.Printf("ERROR: failed to list reminders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
		return
	}

	result := make([]reminderResponse, 0, len(reminders))
	for _, rem := range reminders {
		result = append(result, a.reminderResp(rem))
	}
	writeJSON(w, http.StatusOK, result)
}

type createReminderRequest struct {
	Phrase   string `json:"phrase"`
	Message  string `json:"message,omitempty"`
	Schedule string `json:"schedule,omitempty"` // cron expression for recurring reminders
}

func (a *API) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64*1024)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Phrase) == "" && req.Schedule == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "phrase is required"})
		return
	}

	rem := &store.Reminder{
		Phrase:   req.Phrase,
		Message:  req.Message,
		Schedule: req.Schedule,
	}

	if req.Schedule == "" {
		spec, err := a.Interp.Parse(req.Phrase, time.Now())
		if err == nil {
			var at time.Time
			at, err = future.Resolve(spec, time.Now())
			if err == nil {
				rem.At = at
				if spec.Zone != nil {
					rem.Zone = spec.Zone.String()
				}
			}
		}
		if err != nil {
			if errors.Is(err, future.ErrNoResult) {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no result"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	} else {
		rem.At = time.Now()
	}

	if err := a.Store.CreateReminder(r.Context(), rem); err != nil {
		log.Printf("ERROR: failed to create reminder: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create failed"})
		return
	}

	if a.Schedule != nil {
		if err := a.Schedule(rem); err != nil {
			// Roll back the stored record so the API stays consistent.
			_ = a.Store.DeleteReminder(r.Context(), rem.ID)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	a.emitEvent(realtime.Event{
		Type:       "reminder.created",
		ReminderID: rem.ID,
		Phrase:     rem.Phrase,
		Status:     rem.Status,
	})

	writeJSON(w, http.StatusCreated, a.reminderResp(rem))
}

func (a *API) handleGetReminder(w http.ResponseWriter, r *http.Request, id string) {
	rem, err := a.Store.GetReminder(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: failed to get reminder %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get failed"})
		return
	}
	if rem == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, a.reminderResp(rem))
}

func (a *API) handleCancelReminder(w http.ResponseWriter, r *http.Request, id string) {
	rem, err := a.Store.GetReminder(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: failed to get reminder %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get failed"})
		return
	}
	if rem == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	if err := a.Store.SetStatus(r.Context(), id, store.StatusCanceled); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cancel failed"})
		return
	}
	if a.Cancel != nil {
		a.Cancel(id)
	}

	a.emitEvent(realtime.Event{
		Type:       "reminder.canceled",
		ReminderID: id,
		Phrase:     rem.Phrase,
		Status:     store.StatusCanceled,
	})

	rem.Status = store.StatusCanceled
	writeJSON(w, http.StatusOK, a.reminderResp(rem))
}

func (a *API) handleDeleteReminder(w http.ResponseWriter, r *http.Request, id string) {
	rem, err := a.Store.GetReminder(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: failed to get reminder %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get failed"})
		return
	}
	if rem == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	if a.Cancel != nil {
		a.Cancel(id)
	}
	if err := a.Store.DeleteReminder(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "delete failed"})
		return
	}

	a.emitEvent(realtime.Event{
		Type:       "reminder.deleted",
		ReminderID: id,
		Phrase:     rem.Phrase,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type fireResponse struct {
	ID         string    `json:"id"`
	FiredAt    time.Time `json:"fired_at"`
	Status     string    `json:"status"`
	ExitCode   int       `json:"exit_code"`
	Output     string    `json:"output,omitempty"`
	ErrorMsg   string    `json:"error_msg,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}

func (a *API) handleListFires(w http.ResponseWriter, r *http.Request, id string) {
	rem, err := a.Store.GetReminder(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: failed to get reminder %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get failed"})
		return
	}
	if rem == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	fires, err := a.Store.ListFires(r.Context(), id, limit)
	if err != nil {
		log.Printf("ERROR: failed to list fires for %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
		return
	}

	result := make([]fireResponse, 0, len(fires))
	for _, f := range fires {
		result = append(result, fireResponse{
			ID:         f.ID,
			FiredAt:    f.FiredAt,
			Status:     f.Status,
			ExitCode:   f.ExitCode,
			Output:     f.Output,
			ErrorMsg:   f.ErrorMsg,
			DurationMs: f.DurationMs,
		})
	}
	writeJSON(w, http.StatusOK, result)
}
