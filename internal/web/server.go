package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"soonish/internal/config"
	"soonish/internal/realtime"
	"soonish/internal/store"
	"soonish/internal/web/api"
	"soonish/pkg/glossary"
	"soonish/pkg/phrase"
)

// Server is the HTTP server for the soonish API.
type Server struct {
	httpServer *http.Server
}

// Deps holds the dependencies injected into the API handlers.
type Deps struct {
	Store        store.ReminderStore
	Events       *realtime.Broker
	Interp       *phrase.Interpreter
	Table        *glossary.Table
	GetConfig    func() *config.Config
	Schedule     func(r *store.Reminder) error
	Cancel       func(id string)
	NextFireTime func(id string) (time.Time, bool)
}

// NewServer creates a new Server with the given dependencies.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	a := &api.API{
		Store:        deps.Store,
		Events:       deps.Events,
		Interp:       deps.Interp,
		Table:        deps.Table,
		GetConfig:    deps.GetConfig,
		Schedule:     deps.Schedule,
		Cancel:       deps.Cancel,
		NextFireTime: deps.NextFireTime,
	}
	a.RegisterRoutes(mux)

	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: corsMiddleware(mux),
		},
	}
}

// Start begins listening and serving HTTP requests.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	log.Printf("http server listening on %s", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware adds permissive CORS headers for development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
