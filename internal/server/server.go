// Package server provides the HTTP API for draftsmith.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/draftsmith/draftsmith/internal/config"
	"github.com/draftsmith/draftsmith/internal/pipeline"
	"github.com/draftsmith/draftsmith/internal/providers"
	"github.com/draftsmith/draftsmith/internal/store"
)

// Config holds server configuration.
type Config struct {
	Host          string
	Port          int
	ConfigManager *config.Manager
	TemplateStore *store.TemplateStore
	Logger        *slog.Logger

	// Generator, when set, replaces the config-built provider. Used in
	// tests to run the full API against a deterministic generator.
	Generator providers.TextGenerator
}

// Server is the draftsmith HTTP server.
type Server struct {
	httpServer    *http.Server
	configMgr     *config.Manager
	templateStore *store.TemplateStore
	logger        *slog.Logger

	mu       sync.RWMutex
	llm      providers.TextGenerator
	pipeline *pipeline.Pipeline
	running  bool
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		configMgr:     cfg.ConfigManager,
		templateStore: cfg.TemplateStore,
		logger:        logger,
	}

	llm := cfg.Generator
	if llm == nil {
		if cfg.ConfigManager == nil {
			return nil, fmt.Errorf("either Generator or ConfigManager is required")
		}
		built, err := providers.New(cfg.ConfigManager.Get().ToProviderConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to build text generator: %w", err)
		}
		llm = built
	}
	s.setGenerator(llm, s.assignMode())

	// Rebuild the provider and pipeline when config changes on disk.
	// An injected Generator is pinned and survives reloads.
	if cfg.ConfigManager != nil && cfg.Generator == nil {
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			built, err := providers.New(c.ToProviderConfig())
			if err != nil {
				logger.Error("config reload: provider rebuild failed", "error", err)
				return
			}
			s.setGenerator(built, c.Drafting.FormattingAssignment)
			logger.Info("config reloaded", "provider", built.Name())
		})
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // drafting runs span many LLM calls
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

func (s *Server) assignMode() string {
	if s.configMgr != nil {
		return s.configMgr.Get().Drafting.FormattingAssignment
	}
	return pipeline.AssignLLM
}

// setGenerator swaps in a new provider and rebuilds the pipeline over it.
func (s *Server) setGenerator(llm providers.TextGenerator, assignMode string) {
	opts := []pipeline.Option{pipeline.WithAssignMode(assignMode)}
	if s.templateStore != nil {
		opts = append(opts, pipeline.WithTemplateStore(s.templateStore))
	}
	p := pipeline.New(llm, s.logger, opts...)

	s.mu.Lock()
	s.llm = llm
	s.pipeline = p
	s.mu.Unlock()
}

func (s *Server) currentPipeline() *pipeline.Pipeline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pipeline
}

func (s *Server) generatorName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.llm == nil {
		return ""
	}
	return s.llm.Name()
}

// Start begins serving HTTP requests. Blocks until context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("starting server", "addr", s.httpServer.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		return s.shutdown()
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return fmt.Errorf("server error: %w", err)
	}
}

// shutdown gracefully stops the server.
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
