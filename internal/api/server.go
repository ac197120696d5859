// Package api is the local preview server: it recompiles the source on
// every page load so authors can edit the flowchart and refresh. Publishing
// the compiled document is out of scope; this serves localhost only.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// BuildFunc produces the current document bytes for a request.
type BuildFunc func(r *http.Request) ([]byte, error)

// Server serves a compiled guide for preview.
type Server struct {
	router chi.Router
	build  BuildFunc
	log    *slog.Logger
}

// NewServer creates and configures the preview server.
func NewServer(build BuildFunc, log *slog.Logger) *Server {
	s := &Server{build: build, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleGuide)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	doc, err := s.build(r)
	if err != nil {
		s.log.Error("recompilation failed", "error", err)
		http.Error(w, "compilation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(doc)
}
