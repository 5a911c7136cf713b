// Package server expone el Result de analytics como JSON para la capa de
// presentación. El servidor no computa nada: cada request dispara un ciclo
// del pipeline y serializa el resultado tal cual.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alejandrodnm/tradeledger/internal/pipeline"
	"github.com/alejandrodnm/tradeledger/internal/ports"
)

const shutdownTimeout = 5 * time.Second

// Server sirve el API JSON del dashboard.
type Server struct {
	addr     string
	pipeline *pipeline.Pipeline
	storage  ports.Storage // opcional, habilita /api/history
	router   chi.Router
}

// New crea el servidor y monta las rutas.
func New(addr string, p *pipeline.Pipeline, storage ports.Storage) *Server {
	s := &Server{addr: addr, pipeline: p, storage: storage}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/dashboard", s.handleDashboard)
	r.Get("/api/history", s.handleHistory)

	s.router = r
	return s
}

// Router expone el handler, para tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start arranca el servidor y lo apaga limpiamente al cancelar el contexto.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleDashboard ejecuta un ciclo de adquisición + análisis y devuelve el
// result set completo que consume la capa de presentación. El ciclo pasa
// por RunCycle para que también quede persistido en el histórico.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result := s.pipeline.RunCycle(r.Context())
	s.writeJSON(w, http.StatusOK, result)
}

// handleHistory devuelve los ciclos persistidos de los últimos N días (?days=7).
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		s.writeError(w, http.StatusNotFound, "history storage not configured")
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	now := time.Now().UTC()
	records, err := s.storage.GetHistory(r.Context(), now.AddDate(0, 0, -days), now)
	if err != nil {
		slog.Error("history query failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "history query failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"cycles": records})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
