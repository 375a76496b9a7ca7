package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lixenwraith/marker-anchor/status"
)

// Server serves /healthz, /metrics and /placements
type Server struct {
	reg     *status.Registry
	journal *Journal
	logger  *slog.Logger
	router  chi.Router
	http    *http.Server
}

func NewServer(reg *status.Registry, journal *Journal, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{reg: reg, journal: journal, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/placements", s.handlePlacements)
	r.Get("/placements/{payload}", s.handlePlacement)
	s.router = r
	return s
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until ctx is done or the listener fails
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("inspect listening", "addr", addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Camera string `json:"camera"`
	Placed int    `json:"placed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	camera := "waiting"
	if v := s.reg.Strings.Get(status.KeyCameraState).Load(); v != "" {
		camera = v
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Camera: camera,
		Placed: s.journal.Len(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reg.Snapshot())
}

func (s *Server) handlePlacements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Entries())
}

func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	payload := chi.URLParam(r, "payload")
	p, ok := s.journal.Find(payload)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not placed", "payload": payload})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
