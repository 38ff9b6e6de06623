// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package api serves the read-only crash report HTTP API.
package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/wingedpig/crashscan/internal/api/handlers"
	"github.com/wingedpig/crashscan/internal/api/middleware"
	"github.com/wingedpig/crashscan/internal/api/version"
	"github.com/wingedpig/crashscan/internal/config"
)

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Host    string
	Port    int
	TLSCert string // Path to TLS certificate file
	TLSKey  string // Path to TLS private key file
}

// Dependencies holds all dependencies for API handlers.
type Dependencies struct {
	Crashes handlers.CrashSource
	Version string // Application version string
}

// NewRouter creates a new API router.
func NewRouter(deps Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS)
	r.Use(version.Middleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, map[string]string{
			"version":     deps.Version,
			"api_version": version.LatestVersion,
		})
	}).Methods("GET")

	// Crash handlers
	if deps.Crashes != nil {
		crashHandler := handlers.NewCrashesHandler(deps.Crashes)
		api.HandleFunc("/crashes", crashHandler.List).Methods("GET")
		api.HandleFunc("/crashes/newest", crashHandler.Newest).Methods("GET")
		// Names may include a reports subdirectory, e.g. MyApp/MyApp.crash
		api.HandleFunc("/crashes/{name:.+}/diagnostic", crashHandler.Diagnostic).Methods("GET")
		api.HandleFunc("/crashes/{name:.+}", crashHandler.Get).Methods("GET")
		api.HandleFunc("/parse", crashHandler.Parse).Methods("POST")
	}

	// The subrouter needs its own 405 handler; otherwise a method mismatch
	// falls through to the parent's NotFoundHandler. Route middleware does
	// not run on mismatches, so CORS wraps it to answer preflight requests.
	methodNotAllowed := middleware.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, handlers.ErrMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	}))
	api.MethodNotAllowedHandler = methodNotAllowed
	r.MethodNotAllowedHandler = methodNotAllowed
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, handlers.ErrNotFound, "no route for "+r.URL.Path)
	})

	return r
}

// Server represents the API server.
type Server struct {
	router *mux.Router
	cfg    ServerConfig
	server *http.Server
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, deps Dependencies) *Server {
	return &Server{
		router: NewRouter(deps),
		cfg:    cfg,
	}
}

// Router returns the underlying router.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// ListenAndServe starts the server.
// If tls_cert and tls_key are configured, it serves HTTPS.
func (s *Server) ListenAndServe() error {
	addr := s.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	tlsEnabled, err := CheckTLSConfig(s.cfg.TLSCert, s.cfg.TLSKey)
	if err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	if tlsEnabled {
		log.Printf("API server listening on https://%s (TLS enabled)", addr)
		return s.server.ListenAndServeTLS(config.ExpandPath(s.cfg.TLSCert), config.ExpandPath(s.cfg.TLSKey))
	}

	log.Printf("API server listening on http://%s", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	log.Println("Shutting down API server...")

	// Create a timeout context if none provided
	shutdownCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	return s.server.Shutdown(shutdownCtx)
}
