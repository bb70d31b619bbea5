package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"soonish/internal/realtime"
	"soonish/internal/store"
	"soonish/pkg/glossary"
	"soonish/pkg/phrase"
)

func newTestAPI(t *testing.T) (*API, *http.ServeMux) {
	t.Helper()

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	tbl := glossary.Builtin("en")
	interp, err := phrase.New("en", phrase.WithTable(tbl))
	if err != nil {
		t.Fatalf("phrase.New: %v", err)
	}

	a := &API{
		Store:  st,
		Events: realtime.NewBroker(),
		Interp: interp,
		Table:  tbl,
	}
	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	return a, mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	_, mux := newTestAPI(t)
	rec, body := doJSON(t, mux, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestParseEndpoint(t *testing.T) {
	_, mux := newTestAPI(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/v1/parse",
		`{"phrase":"friday 3pm","ref":"2026-08-31T10:00:00Z"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", rec.Code, body)
	}
	at, err := time.Parse(time.RFC3339, body["at"].(string))
	if err != nil {
		t.Fatalf("parse at: %v", err)
	}
	want := time.Date(2026, 9, 4, 15, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("at = %v, want %v", at, want)
	}

	rec, _ = doJSON(t, mux, http.MethodPost, "/api/v1/parse", `{"phrase":"blorp"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unresolvable phrase status = %d, want 422", rec.Code)
	}

	rec, _ = doJSON(t, mux, http.MethodPost, "/api/v1/parse", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", rec.Code)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	_, mux := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?q=tomo", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var suggestions []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &suggestions); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	found := false
	for _, s := range suggestions {
		if s["phrase"] == "tomorrow" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions missing %q: %v", "tomorrow", suggestions)
	}
}

func TestReminderLifecycle(t *testing.T) {
	_, mux := newTestAPI(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/v1/reminders",
		`{"phrase":"tomorrow 9am","message":"standup"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %v", rec.Code, body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatal("create returned no id")
	}
	if body["status"] != store.StatusPending {
		t.Errorf("status = %v, want pending", body["status"])
	}

	rec, body = doJSON(t, mux, http.MethodGet, "/api/v1/reminders/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if body["phrase"] != "tomorrow 9am" || body["message"] != "standup" {
		t.Errorf("body = %v", body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reminders", nil)
	lrec := httptest.NewRecorder()
	mux.ServeHTTP(lrec, req)
	var list []map[string]any
	if err := json.Unmarshal(lrec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list has %d reminders, want 1", len(list))
	}

	rec, body = doJSON(t, mux, http.MethodPut, "/api/v1/reminders/"+id+"/cancel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel status = %d", rec.Code)
	}
	if body["status"] != store.StatusCanceled {
		t.Errorf("status after cancel = %v", body["status"])
	}

	rec, _ = doJSON(t, mux, http.MethodDelete, "/api/v1/reminders/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec, _ = doJSON(t, mux, http.MethodGet, "/api/v1/reminders/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCreateReminderRejectsUnresolvable(t *testing.T) {
	_, mux := newTestAPI(t)

	rec, _ := doJSON(t, mux, http.MethodPost, "/api/v1/reminders", `{"phrase":"blorp"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}

	rec, _ = doJSON(t, mux, http.MethodPost, "/api/v1/reminders", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty phrase status = %d, want 400", rec.Code)
	}
}

func TestStats(t *testing.T) {
	_, mux := newTestAPI(t)

	doJSON(t, mux, http.MethodPost, "/api/v1/reminders", `{"phrase":"in 2 hours"}`)

	rec, body := doJSON(t, mux, http.MethodGet, "/api/v1/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["total"] != float64(1) || body["pending"] != float64(1) {
		t.Errorf("stats = %v", body)
	}
}

func TestFiresEndpoint(t *testing.T) {
	a, mux := newTestAPI(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/v1/reminders", `{"phrase":"in 1 hour"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	id := body["id"].(string)

	fire := &store.Fire{ReminderID: id, Status: "notified", Output: "hi"}
	if err := a.Store.RecordFire(context.Background(), fire); err != nil {
		t.Fatalf("RecordFire: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reminders/"+id+"/fires", nil)
	frec := httptest.NewRecorder()
	mux.ServeHTTP(frec, req)
	if frec.Code != http.StatusOK {
		t.Fatalf("fires status = %d", frec.Code)
	}
	var fires []map[string]any
	if err := json.Unmarshal(frec.Body.Bytes(), &fires); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fires) != 1 || fires[0]["status"] != "notified" {
		t.Errorf("fires = %v", fires)
	}
}
