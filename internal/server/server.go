// Package server provides the optional local preview server. It is
// strictly read-only and is only started after the graph has been merged
// and persisted, so it never races with graph mutation.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"netgrapher/internal/store"
)

//go:embed web/*
var webFS embed.FS

// Server serves the persisted graph as JSON plus a small viewer page
type Server struct {
	store store.Store
	log   zerolog.Logger
}

// New creates a preview server backed by the given store
func New(st store.Store, log zerolog.Logger) *Server {
	return &Server{store: st, log: log}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/graph", s.getGraph)

	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		// embed guarantees web/ exists; reaching this is a build defect
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(webContent)))

	return mux
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Load(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load graph for preview")
		http.Error(w, "failed to load graph", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(g); err != nil {
		s.log.Error().Err(err).Msg("failed to encode graph")
	}
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msgf("preview server listening; point your browser at http://%s/", addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
