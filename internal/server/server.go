// Package server exposes the notepad over HTTP for browser frontends.
// State lives in the document store; handlers answer from memory and never
// wait on the debounced persistence channel.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	notepad "github.com/hikmetgulsesli/markdown-notepad"
)

// Server serves the REST API and the event WebSocket for one notepad app.
type Server struct {
	app    *notepad.App
	router *mux.Router
	logger *slog.Logger
}

// NewServer wires the routes for an already initialized app.
func NewServer(app *notepad.App, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		app:    app,
		logger: logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/documents", s.handleListDocuments).Methods("GET")
	r.HandleFunc("/api/documents", s.handleCreateDocument).Methods("POST")
	r.HandleFunc("/api/documents/active", s.handleSetActive).Methods("PUT")
	r.HandleFunc("/api/documents/{id}", s.handleGetDocument).Methods("GET")
	r.HandleFunc("/api/documents/{id}", s.handleRenameDocument).Methods("PATCH")
	r.HandleFunc("/api/documents/{id}", s.handleDeleteDocument).Methods("DELETE")
	r.HandleFunc("/api/content", s.handleUpdateContent).Methods("PUT")
	r.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	r.HandleFunc("/api/theme", s.handleGetTheme).Methods("GET")
	r.HandleFunc("/api/theme", s.handleSetTheme).Methods("PUT")
	r.HandleFunc("/ws", s.handleWebSocket)
	s.router = r

	return s
}

// Handler returns the router wrapped with CORS, ready for http.Server or tests.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.router)
}

// Run serves until ctx is cancelled, then drains connections and flushes the
// pending snapshot so a browser reload after restart sees the latest edits.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("notepad server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("http shutdown failed", "error", err)
	}
	return s.app.Store.FlushNow(shutdownCtx)
}

// corsMiddleware handles CORS headers and responds to preflight requests at
// the outer layer so they don't get rejected by method-restricted routes.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
		} else {
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		w.Header().Set("Access-Control-Max-Age", "600")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
