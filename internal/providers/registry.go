package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config describes a single text-generation provider, as loaded from the
// application config (API keys already resolved).
type Config struct {
	Provider   string // "openai" (default) or "openrouter"
	Model      string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// New constructs a TextGenerator from config.
func New(cfg Config) (TextGenerator, error) {
	switch cfg.Provider {
	case "", OpenAIName:
		return NewOpenAIClient(OpenAIConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}), nil
	case OpenRouterName:
		return NewOpenRouterClient(OpenRouterConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Provider)
	}
}

// Registry holds named TextGenerator clients with thread-safe access and
// config-driven reload.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]TextGenerator
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]TextGenerator),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register adds a client by name.
func (r *Registry) Register(name string, client TextGenerator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	if r.logger != nil {
		r.logger.Info("registered text generator", "name", name)
	}
}

// Get returns a client by name.
func (r *Registry) Get(name string) (TextGenerator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("text generator not found: %s", name)
	}
	return client, nil
}

// Reload replaces the registered clients from config. Clients that fail to
// construct are logged and skipped.
func (r *Registry) Reload(cfgs map[string]Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := make(map[string]TextGenerator, len(cfgs))
	for name, cfg := range cfgs {
		client, err := New(cfg)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("skipping provider", "name", name, "error", err)
			}
			continue
		}
		clients[name] = client
	}
	r.clients = clients
}

// List returns all registered client names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}
