// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app wires configuration, the crash manager, and the API server.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/wingedpig/crashscan/internal/api"
	"github.com/wingedpig/crashscan/internal/config"
	"github.com/wingedpig/crashscan/internal/crashes"
)

// App is the main application container.
type App struct {
	mu sync.RWMutex

	version      string
	config       *config.Config
	crashManager *crashes.Manager
	apiServer    *api.Server

	done     chan struct{}
	stopOnce sync.Once
}

// Options holds configuration options for the app.
type Options struct {
	ConfigPath string // Empty runs with built-in defaults
	Host       string
	Port       int
	Dir        string // Reports directory (overrides config)
	Version    string // Application version string
}

// New creates a new App instance.
func New(opts Options) (*App, error) {
	app := &App{
		version: opts.Version,
		done:    make(chan struct{}),
	}

	var cfg *config.Config
	if opts.ConfigPath != "" {
		loaded, err := config.NewLoader().LoadWithDefaults(context.Background(), opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	// Command line overrides
	if opts.Host != "" {
		cfg.Server.Host = opts.Host
	}
	if opts.Port > 0 {
		cfg.Server.Port = opts.Port
	}
	if opts.Dir != "" {
		cfg.Reports.Dir = config.ExpandPath(opts.Dir)
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	app.config = cfg

	return app, nil
}

// Config returns the effective configuration.
func (app *App) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Initialize creates all components.
func (app *App) Initialize(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	cfg := app.config

	crashManager, err := crashes.NewManager(ManagerConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create crash manager: %w", err)
	}
	app.crashManager = crashManager

	if _, err := os.Stat(cfg.Reports.Dir); err != nil {
		log.Printf("Warning: reports directory %s is not readable: %v", cfg.Reports.Dir, err)
	}
	log.Printf("Initialized crash manager: %s (depth %d, %d workers, lookback %s)",
		cfg.Reports.Dir, cfg.Reports.Depth(), cfg.Reports.Workers, cfg.Reports.Lookback)

	app.apiServer = api.NewServer(api.ServerConfig{
		Host:    cfg.Server.Host,
		Port:    cfg.Server.Port,
		TLSCert: cfg.Server.TLSCert,
		TLSKey:  cfg.Server.TLSKey,
	}, api.Dependencies{
		Crashes: crashManager,
		Version: app.version,
	})

	return nil
}

// ManagerConfig converts the reports and classifier sections to a crash
// manager configuration.
func ManagerConfig(cfg *config.Config) crashes.Config {
	return crashes.Config{
		ReportsDir: cfg.Reports.Dir,
		Extensions: cfg.Reports.Extensions,
		MaxDepth:   cfg.Reports.Depth(),
		Workers:    cfg.Reports.Workers,
		Lookback:   cfg.Reports.LookbackDuration(7 * 24 * time.Hour),
		Rules:      cfg.Classifier.Rules(),
	}
}

// Handler returns the API handler. Initialize must have been called.
func (app *App) Handler() http.Handler {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.apiServer.Router()
}

// Start starts the API server in the background.
func (app *App) Start(ctx context.Context) error {
	app.mu.RLock()
	server := app.apiServer
	app.mu.RUnlock()

	if server == nil {
		return fmt.Errorf("app not initialized")
	}

	go func() {
		log.Printf("Starting API server on %s", server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("API server error: %v", err)
			app.Stop()
		}
	}()

	return nil
}

// Run starts the app and blocks until shutdown.
func (app *App) Run(ctx context.Context) error {
	if err := app.Initialize(ctx); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
	case <-ctx.Done():
		log.Printf("Context cancelled, shutting down...")
	case <-app.done:
		log.Printf("Shutdown requested...")
	}

	return app.Shutdown(context.Background())
}

// Stop requests shutdown of a running app.
func (app *App) Stop() {
	app.stopOnce.Do(func() {
		close(app.done)
	})
}

// Shutdown gracefully shuts down all components.
func (app *App) Shutdown(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if app.apiServer != nil {
		if err := app.apiServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down API server: %v", err)
			return err
		}
	}

	log.Println("Shutdown complete")
	return nil
}
