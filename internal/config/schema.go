package config

import (
	"time"

	"github.com/draftsmith/draftsmith/internal/providers"
)

// Config holds draftsmith configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server   ServerCfg   `mapstructure:"server" yaml:"server"`
	LLM      LLMCfg      `mapstructure:"llm" yaml:"llm"`
	Drafting DraftingCfg `mapstructure:"drafting" yaml:"drafting"`
	Storage  StorageCfg  `mapstructure:"storage" yaml:"storage"`
	LogLevel string      `mapstructure:"log_level" yaml:"log_level"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// LLMCfg configures the text-generation provider.
type LLMCfg struct {
	Provider       string `mapstructure:"provider" yaml:"provider"`   // "openai" or "openrouter"
	Model          string `mapstructure:"model" yaml:"model"`
	APIKey         string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries" yaml:"max_retries"`
}

// DraftingCfg tunes pipeline behavior.
type DraftingCfg struct {
	// FormattingAssignment selects how reference formatting maps to
	// sections: "llm" asks the model with cyclic fallback, "cyclic"
	// always uses the paragraph-index mapping.
	FormattingAssignment string `mapstructure:"formatting_assignment" yaml:"formatting_assignment"`
}

// StorageCfg configures template persistence.
type StorageCfg struct {
	// Dir overrides the storage directory (default: {home}/storage).
	Dir string `mapstructure:"dir" yaml:"dir"`

	// PerRequest keys each templates snapshot by request ID instead of
	// overwriting one shared file.
	PerRequest bool `mapstructure:"per_request" yaml:"per_request"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "0.0.0.0",
			Port: 8000,
		},
		LLM: LLMCfg{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			APIKey:         "${OPENAI_API_KEY}",
			TimeoutSeconds: 300,
			MaxRetries:     2,
		},
		Drafting: DraftingCfg{
			FormattingAssignment: "llm",
		},
		Storage: StorageCfg{},
		LogLevel: "info",
	}
}

// ToProviderConfig converts the LLM section to a provider config,
// resolving ${ENV_VAR} references in the API key.
func (c *Config) ToProviderConfig() providers.Config {
	return providers.Config{
		Provider:   c.LLM.Provider,
		Model:      c.LLM.Model,
		APIKey:     ResolveEnvVars(c.LLM.APIKey),
		BaseURL:    c.LLM.BaseURL,
		Timeout:    time.Duration(c.LLM.TimeoutSeconds) * time.Second,
		MaxRetries: c.LLM.MaxRetries,
	}
}
