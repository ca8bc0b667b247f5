// Package httpapi exposes the worker's read-only HTTP surface: health,
// metrics and the last rendered report.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/betform/betform/internal/state"
)

// Server serves /health, /report and /metrics. It never mutates anything.
type Server struct {
	server *http.Server
	state  state.Store
}

// NewServer builds the server. addr should stay local-only unless the
// deployment fronts it with something.
func NewServer(addr string, runState state.Store, metricsHandler http.Handler) *Server {
	s := &Server{state: runState}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start serves until Shutdown. Returns nil on clean shutdown.
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if run, ok, err := s.state.LastRun(r.Context()); err == nil && ok {
		resp["last_run"] = run
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok, err := s.state.Report(r.Context())
	if err != nil {
		http.Error(w, "report unavailable", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "no report yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report))
}
